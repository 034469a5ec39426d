// Package basehdl cung cấp các tiện ích chung để xử lý request/response
// cho các handler domain.
package basehdl

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/global"
)

// BaseHandler chứa các phương thức dùng chung cho mọi handler domain.
// Các handler cụ thể embed struct này để thừa hưởng chuẩn response.
type BaseHandler struct{}

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper function này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 encoding đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc các handler với recover để bắt panic và xử lý lỗi an toàn.
// Hàm này đảm bảo rằng server luôn trả về response cho client, kể cả khi có panic xảy ra.
func (h *BaseHandler) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			// Log stack trace để debug
			debug.PrintStack()

			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// ParseRequestBody parse request body thành struct DTO.
// Body rỗng được chấp nhận cho các endpoint mà mọi field đều optional.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, input)
}

// ValidateInput validate DTO với các struct tag (required, email, min, no_xss, ...).
// Trả về *common.Error với danh sách field lỗi trong Details.
func (h *BaseHandler) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			details := make(map[string]string, len(validationErrors))
			for _, fieldErr := range validationErrors {
				details[fieldErr.Field()] = fmt.Sprintf("không thỏa điều kiện '%s'", fieldErr.Tag())
			}
			return common.NewError(
				common.ErrCodeValidationInput,
				common.ErrInvalidInput.Error(),
				common.StatusBadRequest,
				details,
			)
		}
		return common.ErrInvalidInput
	}
	return nil
}

// ParseAndValidate kết hợp parse body và validate trong một bước.
func (h *BaseHandler) ParseAndValidate(c fiber.Ctx, input interface{}) error {
	if err := h.ParseRequestBody(c, input); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return h.ValidateInput(input)
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Phương thức này đảm bảo format response thống nhất trong toàn bộ ứng dụng.
//
// Parameters:
// - c: Fiber context
// - data: Dữ liệu trả về cho client (có thể là nil nếu chỉ trả về lỗi)
// - err: Lỗi nếu có (nil nếu không có lỗi)
func (h *BaseHandler) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	h.handleResponseWithStatus(c, data, err, common.StatusOK, common.MsgSuccess)
}

// HandleCreatedResponse giống HandleResponse nhưng trả về 201 khi thành công.
// Dùng cho các endpoint tạo mới resource.
func (h *BaseHandler) HandleCreatedResponse(c fiber.Ctx, data interface{}, err error) {
	h.handleResponseWithStatus(c, data, err, common.StatusCreated, common.MsgCreated)
}

func (h *BaseHandler) handleResponseWithStatus(c fiber.Ctx, data interface{}, err error, successStatus int, successMsg string) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		// Nếu không phải custom error, trả về internal server error
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	// Trường hợp thành công
	JSONResponse(c, successStatus, fiber.Map{
		"code":    successStatus,
		"message": successMsg,
		"data":    data,
		"status":  "success",
	})
}
