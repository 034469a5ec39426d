// Package orghdl chứa các HTTP handler cho domain tổ chức.
package orghdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/raghavkapoor31/Organization-Management-Service/internal/api/base/handler"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/api/middleware"
	orgdto "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/dto"
	orgsvc "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/service"
)

// OrgHandler xử lý các request vòng đời tổ chức và đăng nhập admin.
type OrgHandler struct {
	basehdl.BaseHandler
	orgService   *orgsvc.OrganizationService
	tokenService *orgsvc.TokenService
}

// NewOrgHandler tạo handler với các service tiêm từ ngoài.
func NewOrgHandler(orgService *orgsvc.OrganizationService, tokenService *orgsvc.TokenService) *OrgHandler {
	return &OrgHandler{
		orgService:   orgService,
		tokenService: tokenService,
	}
}

// HandleCreate tạo tổ chức mới cùng admin đầu tiên.
// @Router /org/create [post]
func (h *OrgHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input orgdto.OrgCreateInput
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.orgService.Create(c.Context(), &input)
		h.HandleCreatedResponse(c, data, err)
		return nil
	})
}

// HandleGet tra cứu tổ chức theo tên.
// Tên tổ chức nhận từ query param organization_name hoặc từ body JSON.
// @Router /org/get [get]
func (h *OrgHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input orgdto.OrgGetInput
		if name := c.Query("organization_name"); name != "" {
			input.OrganizationName = name
			if err := h.ValidateInput(&input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		} else if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.orgService.Get(c.Context(), input.OrganizationName)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdate cập nhật tổ chức, yêu cầu token của chính tổ chức đó.
// @Router /org/update [put]
func (h *OrgHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input orgdto.OrgUpdateInput
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actorOrg := middleware.ActorOrganization(c)
		data, err := h.orgService.Update(c.Context(), actorOrg, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleDelete xóa tổ chức, yêu cầu token của chính tổ chức đó.
// @Router /org/delete [delete]
func (h *OrgHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input orgdto.OrgDeleteInput
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actorOrg := middleware.ActorOrganization(c)
		data, err := h.orgService.Delete(c.Context(), actorOrg, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleLogin xác thực admin và phát hành access token.
// @Router /admin/login [post]
func (h *OrgHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input orgdto.AdminLoginInput
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.tokenService.Authenticate(c.Context(), &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
