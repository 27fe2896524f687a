package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	adapterports "github.com/kevin07696/stripe-gateway/internal/adapters/ports"
	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/domain/ports"
	"github.com/kevin07696/stripe-gateway/pkg/observability"
)

// remoteCall performs one processor request authenticated with secretKey
type remoteCall[T any] func(ctx context.Context, secretKey string) (*T, error)

// execute dispatches one remote operation. Every failure is converted into a
// *domain.GatewayError; nothing escapes as a panic. An input and an output
// audit entry are written, masked, before execute returns.
func execute[T any](ctx context.Context, s *Service, acct Account, op Operation, params any, call remoteCall[T]) (response *T, gwErr *domain.GatewayError) {
	if err := acct.Config.Validate(); err != nil {
		gwErr, _ = domain.AsGatewayError(err)
		s.logger.Warn("Processor call skipped, gateway not configured",
			ports.String("operation", op.String()),
			ports.String("gateway_id", acct.GatewayID),
		)
		return nil, gwErr
	}

	start := time.Now()
	var (
		remoteErr   *adapterports.RemoteError
		loggableOut any
	)

	func() {
		defer func() {
			if r := recover(); r != nil {
				response = nil
				remoteErr = &adapterports.RemoteError{
					Kind:    adapterports.RemoteErrorAPI,
					Message: fmt.Sprintf("panic: %v", r),
				}
			}
		}()

		var err error
		response, err = call(ctx, acct.Config.SecretKey)
		if err != nil {
			response = nil
			if !errors.As(err, &remoteErr) {
				remoteErr = &adapterports.RemoteError{
					Kind:    adapterports.RemoteErrorAPI,
					Message: err.Error(),
					Err:     err,
				}
			}
		}
	}()

	duration := time.Since(start)

	if remoteErr != nil {
		gwErr = classifyRemoteError(remoteErr)
		loggableOut = failurePayload(remoteErr)
		observability.RecordRemoteCall(op.String(), string(remoteErr.Kind), duration)

		fields := []ports.Field{
			ports.String("operation", op.String()),
			ports.String("gateway_id", acct.GatewayID),
			ports.String("kind", string(remoteErr.Kind)),
			ports.String("remote_code", remoteErr.Code),
			ports.Int("http_status", remoteErr.HTTPStatus),
			ports.Duration("duration", duration),
		}
		if remoteErr.Kind != adapterports.RemoteErrorAuthentication {
			fields = append(fields, ports.Err(remoteErr))
		}
		s.logger.Warn("Processor call failed", fields...)
	} else {
		loggableOut = response
		observability.RecordRemoteCall(op.String(), "success", duration)

		s.logger.Info("Processor call succeeded",
			ports.String("operation", op.String()),
			ports.String("gateway_id", acct.GatewayID),
			ports.Duration("duration", duration),
		)
	}

	s.audit(ctx, acct, op, params, loggableOut, gwErr == nil)

	return response, gwErr
}

// classifyRemoteError turns a processor failure into a structured local error
func classifyRemoteError(remoteErr *adapterports.RemoteError) *domain.GatewayError {
	switch remoteErr.Kind {
	case adapterports.RemoteErrorAuthentication:
		// The remote message may echo the rejected key, so it is not wrapped
		errorType := remoteErr.Type
		if errorType == "" {
			errorType = "authentication_error"
		}
		gwErr := domain.NewGatewayError(domain.ErrorCodeRemoteAuthentication, domain.MessageAuthenticationFailed)
		gwErr.RemoteType = errorType
		gwErr.Fields.Add(errorType, "auth_error", domain.MessageAuthenticationFailed)
		return gwErr

	case adapterports.RemoteErrorInvalidRequest:
		if !remoteErr.HasBody {
			return domain.NewGeneralError(remoteErr)
		}
		gwErr := domain.WrapError(domain.ErrorCodeRemoteInvalidRequest, remoteErr.Message, remoteErr)
		gwErr.RemoteType = remoteErr.Type
		gwErr.RemoteCode = remoteErr.Code
		gwErr.Fields.Add(remoteErr.Type, "error", remoteErr.Message)
		return gwErr

	case adapterports.RemoteErrorCard:
		if !remoteErr.HasBody {
			return domain.NewGeneralError(remoteErr)
		}
		key := remoteErr.Code
		if key == "" {
			key = "error"
		}
		gwErr := domain.WrapError(domain.ErrorCodeRemoteCard, remoteErr.Message, remoteErr)
		gwErr.RemoteType = remoteErr.Type
		gwErr.RemoteCode = remoteErr.Code
		gwErr.Fields.Add(remoteErr.Type, key, remoteErr.Message)
		return gwErr

	default:
		return domain.NewGeneralError(remoteErr)
	}
}

// failurePayload is what the audit log records for a failed call
func failurePayload(remoteErr *adapterports.RemoteError) map[string]any {
	switch {
	case remoteErr.Kind == adapterports.RemoteErrorAuthentication:
		return map[string]any{"error": map[string]any{
			"type":    remoteErr.Type,
			"message": domain.MessageAuthenticationFailed,
		}}
	case remoteErr.HasBody:
		return map[string]any{"error": remoteErr}
	default:
		return map[string]any{"error": remoteErr.Message}
	}
}

// audit writes the input and output entries for one remote call. Sink
// failures are logged and never fail the operation.
func (s *Service) audit(ctx context.Context, acct Account, op Operation, input, output any, success bool) {
	if s.auditLog == nil {
		return
	}

	// The audit trail is written even when the caller gave up
	ctx = context.WithoutCancel(ctx)

	url := op.LogURL()
	entries := []struct {
		direction ports.AuditDirection
		payload   any
		success   bool
	}{
		{ports.AuditDirectionInput, input, true},
		{ports.AuditDirectionOutput, output, success},
	}

	for _, e := range entries {
		payload, err := MaskPayload(e.payload)
		if err != nil {
			s.logger.Error("Failed to mask audit payload",
				ports.String("operation", op.String()),
				ports.String("direction", string(e.direction)),
				ports.Err(err),
			)
			payload = []byte(`{"error":"unloggable payload"}`)
		}

		entry := &ports.AuditLogEntry{
			ID:        uuid.New().String(),
			GatewayID: acct.GatewayID,
			URL:       url,
			Direction: e.direction,
			Payload:   payload,
			Success:   e.success,
			CreatedAt: s.now(),
		}
		if err := s.auditLog.Append(ctx, entry); err != nil {
			s.logger.Error("Failed to append audit log entry",
				ports.String("operation", op.String()),
				ports.String("direction", string(e.direction)),
				ports.Err(err),
			)
		}
	}
}
