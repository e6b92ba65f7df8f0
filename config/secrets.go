package config

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ResolveSecrets fills secret fields from Parameter Store in prod.
// Anything already set (from config.yaml or env) is left alone.
func (c *Config) ResolveSecrets() {
	if c.Log.Environment != "prod" {
		return
	}

	if c.Slack.WebhookURL == "" {
		c.Slack.WebhookURL = getParameterStoreValue("BONDWATCH_SLACK_WEBHOOK_URL", true)
	}
	if c.Sheets.APIKey == "" {
		c.Sheets.APIKey = getParameterStoreValue("BONDWATCH_SHEETS_API_KEY", true)
	}
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	baseCtx := context.Background()
	ctxWithTimeout, cancel := context.WithTimeout(baseCtx, 5*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctxWithTimeout, input)
	if err != nil {
		return ""
	}

	if result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
