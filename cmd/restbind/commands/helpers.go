package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hexennacht/restbind/pkg/bindclient"
	"github.com/hexennacht/restbind/pkg/restbind"
	"github.com/spf13/viper"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"

	defaultJSONIndent = "  "
)

// loadConfiguredContract loads the contract named by --contract / the
// RESTBIND_CONTRACT environment variable.
func loadConfiguredContract() (*Contract, error) {
	return LoadContract(viper.GetString("contract"))
}

// bindContract resolves the effective base URL and headers and binds the
// contract's tree.
func bindContract(contract *Contract) (*restbind.Bound, error) {
	baseURL := contract.BaseURL
	if override := viper.GetString("base-url"); override != "" {
		baseURL = override
	}

	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	headers := make(map[string]string, len(contract.Headers))
	for name, value := range contract.Headers {
		headers[name] = value
	}

	for _, header := range viper.GetStringSlice("header") {
		name, value, err := splitKeyValue(header)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, header)
		}

		headers[name] = value
	}

	config := &restbind.Config{
		BaseURL:     baseURL,
		BaseHeaders: headers,
		RetryMax:    viper.GetInt("retry-max"),
		Debug:       viper.GetBool("verbose"),
	}

	if config.Debug {
		config.Logger = &stderrLogger{}
	}

	return bindclient.New(config, contract.Tree)
}

// splitKeyValue splits a "name=value" argument.
func splitKeyValue(arg string) (string, string, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", "", ErrInvalidKeyValue
	}

	return name, value, nil
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", defaultJSONIndent)

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	return nil
}

// stderrLogger writes structured lines to stderr for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }
