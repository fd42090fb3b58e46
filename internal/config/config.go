package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig             `yaml:"server"`
	Network  string                   `yaml:"network"`
	Networks map[string]NetworkConfig `yaml:"networks"`
	Logging  LoggingConfig            `yaml:"logging"`
}

// ServerConfig represents the server configuration
type ServerConfig struct {
	Port      int    `yaml:"port"`
	Host      string `yaml:"host"`
	Transport string `yaml:"transport"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NetworkConfig describes one Flow EVM network. The active network is
// selected once at startup and is read-only afterwards.
type NetworkConfig struct {
	Name        string `yaml:"name"`
	RPCURL      string `yaml:"rpc_url"`
	ChainID     uint64 `yaml:"chain_id"`
	ExplorerURL string `yaml:"explorer_url"`
	Symbol      string `yaml:"symbol"`
	Decimals    int    `yaml:"decimals"`
}

// DefaultNetworks returns the built-in Flow EVM network table
func DefaultNetworks() map[string]NetworkConfig {
	return map[string]NetworkConfig{
		"mainnet": {
			Name:        "Flow EVM Mainnet",
			RPCURL:      "https://mainnet.evm.nodes.onflow.org",
			ChainID:     747,
			ExplorerURL: "https://evm.flowscan.io",
			Symbol:      "FLOW",
			Decimals:    18,
		},
		"testnet": {
			Name:        "Flow EVM Testnet",
			RPCURL:      "https://testnet.evm.nodes.onflow.org",
			ChainID:     545,
			ExplorerURL: "https://evm-testnet.flowscan.io",
			Symbol:      "FLOW",
			Decimals:    18,
		},
		"emulator": {
			Name:        "Flow EVM Emulator",
			RPCURL:      "http://127.0.0.1:8545",
			ChainID:     646,
			ExplorerURL: "",
			Symbol:      "FLOW",
			Decimals:    18,
		},
	}
}

// Default returns a configuration that works with no config file present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			Transport: "stdio",
		},
		Network:  "testnet",
		Networks: DefaultNetworks(),
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load loads the configuration from a file and overrides with environment
// variables. A missing file is not an error; the built-in defaults apply.
func Load(filepath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(filepath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// Networks declared in the file extend the built-in table
	for key, net := range DefaultNetworks() {
		if _, ok := config.Networks[key]; !ok {
			if config.Networks == nil {
				config.Networks = make(map[string]NetworkConfig)
			}
			config.Networks[key] = net
		}
	}

	// Override with environment variables
	config.overrideWithEnv()

	return config, nil
}

// overrideWithEnv overrides configuration with environment variables
func (c *Config) overrideWithEnv() {
	// Server configuration
	if port := os.Getenv("FLOW_MCP_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("FLOW_MCP_SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if transport := os.Getenv("FLOW_MCP_TRANSPORT"); transport != "" {
		c.Server.Transport = transport
	}

	// Active network selection
	if network := os.Getenv("FLOW_MCP_NETWORK"); network != "" {
		c.Network = network
	}

	// Endpoint override for the active network
	if rpcURL := os.Getenv("FLOW_MCP_RPC_URL"); rpcURL != "" {
		if net, ok := c.Networks[c.Network]; ok {
			net.RPCURL = rpcURL
			c.Networks[c.Network] = net
		}
	}

	// Logging configuration
	if level := os.Getenv("FLOW_MCP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// ActiveNetwork resolves the selected network from the table
func (c *Config) ActiveNetwork() (*NetworkConfig, error) {
	net, ok := c.Networks[c.Network]
	if !ok {
		return nil, fmt.Errorf("unknown network %q, available: %s", c.Network, c.networkKeys())
	}
	return &net, nil
}

func (c *Config) networkKeys() string {
	keys := ""
	for key := range c.Networks {
		if keys != "" {
			keys += ", "
		}
		keys += key
	}
	return keys
}
