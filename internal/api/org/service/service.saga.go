package orgsvc

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/raghavkapoor31/Organization-Management-Service/internal/logger"
)

// SagaStep là một bước trong chuỗi thao tác nhiều bước lên storage.
// Run thực hiện bước đó; Undo hoàn tác lại khi một bước sau thất bại.
// Undo có thể nil cho các bước không cần hoàn tác.
type SagaStep struct {
	Name string
	Run  func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Saga chạy tuần tự một chuỗi SagaStep. Khi bước thứ i thất bại,
// các bước 0..i-1 được hoàn tác theo thứ tự ngược lại và lỗi của
// bước i được trả về nguyên vẹn.
//
// Lỗi trong lúc hoàn tác không che lỗi gốc: chúng chỉ được ghi vào
// audit log vì tại thời điểm đó không còn cách nào khôi phục tự động,
// cần người vận hành xử lý tay.
type Saga struct {
	steps []SagaStep
	log   *logrus.Logger
}

// NewSaga tạo saga rỗng, ghi sự cố hoàn tác vào audit logger.
func NewSaga() *Saga {
	return &Saga{
		log: logger.GetAuditLogger(),
	}
}

// AddStep thêm một bước vào cuối chuỗi. Trả về chính saga để chain.
func (s *Saga) AddStep(step SagaStep) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute chạy toàn bộ chuỗi. Trả về nil nếu mọi bước thành công.
func (s *Saga) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.compensate(ctx, i-1)
			return err
		}
	}
	return nil
}

// compensate hoàn tác các bước từ vị trí from về 0.
func (s *Saga) compensate(ctx context.Context, from int) {
	for i := from; i >= 0; i-- {
		step := s.steps[i]
		if step.Undo == nil {
			continue
		}
		if err := step.Undo(ctx); err != nil {
			s.log.WithError(err).WithField("step", step.Name).Error("Hoàn tác thất bại, dữ liệu cần được kiểm tra thủ công")
		} else {
			s.log.WithField("step", step.Name).Info("Đã hoàn tác bước")
		}
	}
}
