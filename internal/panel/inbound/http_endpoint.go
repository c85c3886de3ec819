package inbound

import (
	"github.com/secretdeck/secretdeck/internal/panel/entity"
	"github.com/secretdeck/secretdeck/internal/panel/usecase"
	"github.com/secretdeck/secretdeck/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListSecrets returns every monitored secret with classified fields.
// @Summary List monitored secrets
// @Description Returns all monitored secrets with current codes for TOTP fields.
// @Tags Panel
// @Produce json
// @Success 200 {object} router.successResponse{data=SecretsResponse} "Secret list"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/secrets [get]
func (h *HTTPEndpoint) ListSecrets(r *router.Request) (any, error) {
	items, err := h.uc.ListSecrets(r.Context())
	if err != nil {
		return nil, err
	}

	resp := make([]SecretResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toSecretResponse(item))
	}

	return SecretsResponse{Secrets: resp}, nil
}

// SecretCodes returns current one-time codes for a single secret.
// @Summary Get secret codes
// @Description Returns the current one-time codes for every TOTP field of one secret.
// @Tags Panel
// @Produce json
// @Param name path string true "Secret name"
// @Success 200 {object} router.successResponse{data=SecretResponse} "Current codes"
// @Failure 404 {object} router.errorResponse "Secret not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/secrets/{name}/codes [get]
func (h *HTTPEndpoint) SecretCodes(r *router.Request) (any, error) {
	item, err := h.uc.SecretCodes(r.Context(), usecase.SecretCodesInput{
		Name: r.GetParam("name"),
	})
	if err != nil {
		return nil, err
	}

	return toSecretResponse(*item), nil
}

func toSecretResponse(item entity.Secret) SecretResponse {
	fields := make([]SecretFieldResponse, 0, len(item.Fields))
	for _, f := range item.Fields {
		fields = append(fields, SecretFieldResponse{
			Name:       f.Name,
			Kind:       string(f.Kind),
			Value:      f.Value,
			Issuer:     f.Issuer,
			Label:      f.Label,
			Code:       f.Code,
			ValidFrom:  f.ValidFrom,
			ValidUntil: f.ValidUntil,
			Remaining:  f.Remaining,
			Error:      f.Error,
		})
	}

	return SecretResponse{
		Name:   item.Name,
		Fields: fields,
		Error:  item.Error,
	}
}
