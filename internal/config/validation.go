package config

import (
	"fmt"
	"net/url"
	"strings"
)

// NetworkStatus represents the configuration status of a network entry
type NetworkStatus struct {
	Network    string `json:"network"`
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}

// ValidationResult represents the overall configuration validation result
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Networks []NetworkStatus `json:"networks"`
	Errors   []string        `json:"errors"`
	Warnings []string        `json:"warnings"`
}

// ValidateConfig validates the configuration and returns detailed status
func (c *Config) ValidateConfig() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Networks: []NetworkStatus{},
		Errors:   []string{},
		Warnings: []string{},
	}

	if c.Network == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "no active network selected")
	} else if _, ok := c.Networks[c.Network]; !ok {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("active network %q is not in the network table", c.Network))
	}

	for key, net := range c.Networks {
		status := c.validateNetwork(key, net)
		result.Networks = append(result.Networks, status)
		if !status.Configured {
			if key == c.Network {
				result.Valid = false
				result.Errors = append(result.Errors, status.Message)
			} else {
				result.Warnings = append(result.Warnings, status.Message)
			}
		}
	}

	switch c.Server.Transport {
	case "", "stdio", "http":
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported transport %q (expected stdio or http)", c.Server.Transport))
	}

	return result
}

// validateNetwork checks a single network entry
func (c *Config) validateNetwork(key string, net NetworkConfig) NetworkStatus {
	if net.RPCURL == "" {
		return NetworkStatus{
			Network: key,
			Message: fmt.Sprintf("network %q has no RPC endpoint", key),
		}
	}

	parsed, err := url.Parse(net.RPCURL)
	if err != nil || parsed.Host == "" || !strings.HasPrefix(parsed.Scheme, "http") {
		return NetworkStatus{
			Network: key,
			Message: fmt.Sprintf("network %q has an invalid RPC endpoint %q", key, net.RPCURL),
		}
	}

	if net.ChainID == 0 {
		return NetworkStatus{
			Network: key,
			Message: fmt.Sprintf("network %q has no chain id", key),
		}
	}

	return NetworkStatus{
		Network:    key,
		Configured: true,
		Message:    fmt.Sprintf("network %q configured", key),
	}
}

// Validate returns a single error summarizing a failed validation
func (c *Config) Validate() error {
	result := c.ValidateConfig()
	if result.Valid {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(result.Errors, "; "))
}
