package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"cheapticket/config"
	mailMocks "cheapticket/infras/mail/mocks"
	"cheapticket/infras/otel/mocks"
	"cheapticket/internal/domains/support/model/dto"
	"cheapticket/internal/domains/support/service"
	"cheapticket/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSupportService_ContactSupport(t *testing.T) {
	req := dto.ContactSupportRequest{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Refund",
		Message: "Where is my refund?",
	}
	body := "Name: Jane\nEmail: jane@example.com\n\nMessage:\nWhere is my refund?"

	tests := []struct {
		name     string
		mailErr  error
		wantCode int
	}{
		{name: "delivered"},
		{name: "smtp failure", mailErr: errors.New("smtp down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cfg := &config.Config{}
			cfg.Mail.SupportAddress = "support@cheaptickethub.com"

			mailer := mailMocks.NewMockMailer(ctrl)
			mailer.EXPECT().
				Send(gomock.Any(), []string{"support@cheaptickethub.com"}, "Refund", body).
				Return(tt.mailErr)

			svc := service.New(cfg, mailer, mocks.NewOtel(), nil)

			res, err := svc.ContactSupport(context.Background(), req)

			if tt.wantCode != 0 {
				assert.EqualError(t, err, dto.MessageSendFailed)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, dto.MessageSent, res.Message)
		})
	}
}
