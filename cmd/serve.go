package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ailit/internal/config"
	"ailit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the completion passthrough server",
	Long: "Runs the HTTP passthrough that browser clients call instead of holding\n" +
		"API keys themselves. Requests are forwarded to the upstream completion\n" +
		"API and wrapped in a success envelope.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.LLM.OpenAI.APIKey == "" {
			return fmt.Errorf("an upstream API key is required to serve (set AILIT_LLM__OPENAI__API_KEY or OPENAI_API_KEY)")
		}

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		srv := server.New(cfg.LLM.OpenAI, cfg.AllowedOrigins, newLogger(cfg))
		return srv.Run(cmd.Context(), cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}
