package cmd

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/lw-quarantine-app/internal/config"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Run the quarantine webhook as an AWS Lambda function",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "http",
			Short: "Handle API Gateway or function URL requests",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runLambdaHTTP(cmd)
			},
		},
		&cobra.Command{
			Use:   "event",
			Short: "Handle EventBridge events carrying the webhook payload in their detail",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runLambdaEvent(cmd)
			},
		},
	)
	return cmd
}

// runLambdaHTTP blocks serving invocations until the Lambda runtime shuts the process down.
func runLambdaHTTP(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	logger := modeLogger(config.ModeLambdaHTTP)
	rtm, err := setup(ctx, logger)
	if err != nil {
		return err
	}

	logger.Info("lambda starting...", "payloadType", config.Lambda.PayloadType)
	lambda.StartWithOptions(rtm.Lambda, lambda.WithContext(ctx))
	return nil
}

func runLambdaEvent(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	logger := modeLogger(config.ModeLambdaEvent)
	rtm, err := setup(ctx, logger)
	if err != nil {
		return err
	}

	logger.Info("lambda starting...")
	lambda.StartWithOptions(rtm.LambdaForEvent, lambda.WithContext(ctx))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
