package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diegofornalha/flow-mcp/internal/config"
	"github.com/diegofornalha/flow-mcp/internal/logging"
	"github.com/diegofornalha/flow-mcp/internal/mcp/server"
)

var (
	configPath string
	network    string
	transport  string
	port       int
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flow-mcp",
		Short: "MCP server exposing Flow EVM JSON-RPC tools",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&configPath, "config", "./configs/config.yaml", "path to the configuration file")
	serveCmd.Flags().StringVar(&network, "network", "", "active network (mainnet, testnet, emulator)")
	serveCmd.Flags().StringVar(&transport, "transport", "", "transport mode (stdio or http)")
	serveCmd.Flags().IntVar(&port, "port", 0, "port for the http transport")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	networksCmd := &cobra.Command{
		Use:   "networks",
		Short: "List the known Flow EVM networks",
		RunE:  runNetworks,
	}
	networksCmd.Flags().StringVar(&configPath, "config", "./configs/config.yaml", "path to the configuration file")

	rootCmd.AddCommand(serveCmd, networksCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The flag wins over the configured level
	if debug {
		logging.EnableDebugMode()
	}

	services, err := server.InitializeServices(cfg)
	if err != nil {
		return err
	}

	srv := server.NewMCPServer(cfg, services)
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx, cfg.Server.Transport, cfg.Server.Host, cfg.Server.Port)
}

func runNetworks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(cfg.Networks))
	for key := range cfg.Networks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		net := cfg.Networks[key]
		active := " "
		if key == cfg.Network {
			active = "*"
		}
		fmt.Printf("%s %-10s chain-id=%-4d %s\n", active, key, net.ChainID, net.RPCURL)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over file and environment
	if network != "" {
		cfg.Network = network
	}
	if transport != "" {
		cfg.Server.Transport = transport
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	if level, ok := logging.ParseLevel(cfg.Logging.Level); ok {
		logging.SetGlobalLevel(level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
