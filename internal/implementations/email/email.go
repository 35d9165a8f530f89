package email

import (
	"context"
	"fmt"
	"net/url"
	"time"

	c "memberd/internal/core/domain/common"
	"memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"
const verificationSubject = "Verify your email"

// SESSender delivers verification links through Amazon SES.
type SESSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender  string
	baseURL url.URL
}

func NewSESSender(awsConfig aws.Config, sender string, baseURL url.URL) *SESSender {
	return &SESSender{
		ses:     ses.NewFromConfig(awsConfig),
		sender:  sender,
		baseURL: baseURL,
	}
}

func (s *SESSender) SendVerificationToken(
	ctx context.Context,
	m member.Member,
	token member.VerificationToken,
	expiresAt time.Time,
) error {
	verifyURL := verificationURL(s.baseURL, m.Email, token)
	subject := verificationSubject
	bodyHTML := fmt.Sprintf(
		"<p>Hello <b>%s</b>,</p>"+
			"<p>Please verify your email:</p>"+
			"<p><a href=\"%s\">Verify Email</a></p>"+
			"<p>This link expires at %s.</p>",
		m.Name,
		verifyURL,
		expiresAt.UTC().Format(time.RFC1123),
	)
	bodyText := fmt.Sprintf(
		"Hello %s,\n\nPlease verify your email: %s\n\nThis link expires at %s.\n",
		m.Name,
		verifyURL,
		expiresAt.UTC().Format(time.RFC1123),
	)

	email := string(m.Email)
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Charset: aws.String(charsetUTF8),
					Data:    &subject,
				},
				Body: &types.Body{
					Html: &types.Content{
						Charset: aws.String(charsetUTF8),
						Data:    &bodyHTML,
					},
					Text: &types.Content{
						Charset: aws.String(charsetUTF8),
						Data:    &bodyText,
					},
				},
			},
		},
	)
	return err
}

// LogSender is the dev sandbox transport: it logs the verification link
// instead of delivering it, so registrations can be completed locally
// without an email account.
type LogSender struct {
	log     logging.Logger
	baseURL url.URL
}

func NewLogSender(log logging.Logger, baseURL url.URL) *LogSender {
	return &LogSender{log: log, baseURL: baseURL}
}

func (s *LogSender) SendVerificationToken(
	ctx context.Context,
	m member.Member,
	token member.VerificationToken,
	expiresAt time.Time,
) error {
	s.log.Info(
		ctx,
		"Email delivery is disabled, verification link follows.",
		logging.Entry("email", m.Email),
		logging.Entry("verifyUrl", verificationURL(s.baseURL, m.Email, token)),
		logging.Entry("expiresAt", expiresAt),
	)
	return nil
}

func verificationURL(base url.URL, email c.Email, token member.VerificationToken) string {
	q := url.Values{}
	q.Set("token", string(token))
	q.Set("email", string(email))
	base.Path = "/verify"
	base.RawQuery = q.Encode()
	return base.String()
}
