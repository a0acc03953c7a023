package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"wordrush/internal/models"
)

// ReportService emails session summaries via Amazon SES. When no
// sender address is configured the service is disabled and every send
// becomes a no-op, so deployments without SES credentials still work.
type ReportService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewReportService creates a new report service
func NewReportService(awsRegion, fromEmail, fromName string) (*ReportService, error) {
	if fromEmail == "" {
		log.Info().Msg("report emails disabled: SES_FROM_EMAIL not configured")
		return &ReportService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("report emails enabled")

	return &ReportService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether report emails are enabled
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// SendSessionReport emails the summary of a finished session
func (s *ReportService) SendSessionReport(ctx context.Context, toEmail string, report *models.SessionReport) error {
	if !s.enabled || toEmail == "" {
		log.Debug().Str("session", report.SessionUID).Msg("skipping session report email")
		return nil
	}

	subject := fmt.Sprintf("%s finished a %s round: %d points", report.PlayerName, report.Mode, report.FinalScore)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.score { font-size: 32px; font-weight: bold; text-align: center; color: #4a90e2; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Session Report</h1>
		</div>
		<div class="content">
			<p>%s just finished a <strong>%s</strong> round (%s difficulty).</p>
			<p class="score">%d points</p>
			<p>Questions answered: %d<br>
			Correct: %d<br>
			Wrong: %d</p>
		</div>
		<div class="footer">
			<p>This is an automated email from WordRush. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, report.PlayerName, report.Mode, report.Difficulty, report.FinalScore,
		report.TotalQuestions, report.CorrectCount, report.WrongCount)

	textBody := fmt.Sprintf(`%s just finished a %s round (%s difficulty).

Final score: %d
Questions answered: %d
Correct: %d
Wrong: %d

---
This is an automated email from WordRush. Please do not reply.
`, report.PlayerName, report.Mode, report.Difficulty, report.FinalScore,
		report.TotalQuestions, report.CorrectCount, report.WrongCount)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *ReportService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Info().Str("to", toEmail).Str("subject", subject).Msg("email sent")
	return nil
}
