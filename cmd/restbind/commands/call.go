package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/hexennacht/restbind/pkg/restbind"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCallCommand creates the call command.
func NewCallCommand() *cobra.Command {
	var (
		params       []string
		queryValues  []string
		data         string
		secretHeader string
	)

	cmd := &cobra.Command{
		Use:   "call ROUTE",
		Short: "Invoke one route from the contract",
		Long: `Invoke one route from the contract by its dotted key, e.g.:

  restbind call users.byId -p id=42 -q active=true

Read-style routes (GET, HEAD) perform a query; everything else performs a
mutation with the --data payload as JSON body.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := loadConfiguredContract()
			if err != nil {
				return err
			}

			if secretHeader != "" {
				value, err := readSecret(secretHeader)
				if err != nil {
					return err
				}

				if contract.Headers == nil {
					contract.Headers = make(map[string]string, 1)
				}

				contract.Headers[secretHeader] = value
			}

			bound, err := bindContract(contract)
			if err != nil {
				return err
			}

			call, err := buildCallArgs(params, queryValues, data)
			if err != nil {
				return err
			}

			return performCall(cmd, bound.At(args[0]), call)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "path parameter as name=value (repeatable)")
	cmd.Flags().StringArrayVarP(&queryValues, "query", "q", nil, "query value as name=value (repeatable)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body as JSON (mutations only)")
	cmd.Flags().StringVar(&secretHeader, "secret-header", "", "header name to prompt for without echo")

	return cmd
}

// performCall picks the operation by route style and prints the outcome.
func performCall(cmd *cobra.Command, bound *restbind.Bound, call restbind.CallArgs) error {
	route, err := bound.Route()
	if err != nil {
		return err
	}

	if route.Readable() {
		query, err := bound.Query()
		if err != nil {
			return err
		}

		payload, err := query(cmd.Context(), call)
		if err != nil {
			if respErr, ok := restbind.AsResponseError(err); ok {
				_ = printJSON(map[string]any{"status": respErr.Status, "error": respErr.Data})

				return err
			}

			return err
		}

		return printJSON(payload)
	}

	mutation, err := bound.Mutation()
	if err != nil {
		return err
	}

	payload, err := mutation(cmd.Context(), call)
	if err != nil {
		return err
	}

	if result, ok := payload.(*restbind.Result); ok {
		return printJSON(map[string]any{"status": result.Status, "data": result.Data})
	}

	return printJSON(payload)
}

// buildCallArgs assembles call arguments from flag values.
func buildCallArgs(params, queryValues []string, data string) (restbind.CallArgs, error) {
	call := restbind.CallArgs{}

	if len(params) > 0 {
		call.Params = make(map[string]string, len(params))

		for _, param := range params {
			name, value, err := splitKeyValue(param)
			if err != nil {
				return restbind.CallArgs{}, fmt.Errorf("parsing --param %q: %w", param, err)
			}

			call.Params[name] = value
		}
	}

	if len(queryValues) > 0 {
		call.Query = make(map[string]any, len(queryValues))

		for _, queryValue := range queryValues {
			name, value, err := splitKeyValue(queryValue)
			if err != nil {
				return restbind.CallArgs{}, fmt.Errorf("parsing --query %q: %w", queryValue, err)
			}

			call.Query[name] = value
		}
	}

	if data != "" {
		var body any

		if err := json.Unmarshal([]byte(data), &body); err != nil {
			return restbind.CallArgs{}, fmt.Errorf("parsing --data: %w", err)
		}

		call.Body = body
	}

	return call, nil
}

// readSecret prompts for a header value with echo disabled.
func readSecret(name string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", name)

	value, err := term.ReadPassword(syscall.Stdin)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	return string(value), nil
}
