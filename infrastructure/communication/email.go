package communication

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailInfo struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// SendEmail delivers a transactional email through SES.
func SendEmail(ctx context.Context, info *EmailInfo) error {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	client := ses.NewFromConfig(cfg)

	body := types.Body{}
	if info.Text != "" {
		body.Text = &types.Content{Data: aws.String(info.Text), Charset: aws.String("UTF-8")}
	}
	if info.HTML != "" {
		body.Html = &types.Content{Data: aws.String(info.HTML), Charset: aws.String("UTF-8")}
	}

	_, err = client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(info.From),
		Destination: &types.Destination{ToAddresses: info.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(info.Subject), Charset: aws.String("UTF-8")},
			Body:    &body,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
