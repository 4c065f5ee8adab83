// Package secrets resolves credentials from AWS SSM Parameter Store. All
// parameters are read once at startup; nothing is mutated afterwards.
package secrets

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Parameter names for the two required credentials.
const (
	ParamTelegramToken = "/descrivibot/prod/telegram-token"
	ParamGeminiAPIKey  = "/descrivibot/prod/gemini-api-key"
)

// Client reads decrypted parameters from SSM.
type Client struct {
	ssm *ssm.Client
}

// NewClient creates an SSM-backed secrets client using the default AWS
// credential chain.
func NewClient(ctx context.Context) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{ssm: ssm.NewFromConfig(awsCfg)}, nil
}

// Get retrieves one decrypted parameter value. A missing or unreadable
// parameter is a configuration error and should be treated as fatal.
func (c *Client) Get(ctx context.Context, name string) (string, error) {
	withDecryption := true
	out, err := c.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get SSM parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil || *out.Parameter.Value == "" {
		return "", fmt.Errorf("SSM parameter %s is empty", name)
	}
	return *out.Parameter.Value, nil
}
