package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hexennacht/restbind/pkg/restbind"
	"gopkg.in/yaml.v3"
)

// Common static errors used throughout the commands package.
var (
	ErrContractFileRequired = errors.New("contract file is required (use --contract)")
	ErrBaseURLRequired      = errors.New("base URL is required (contract base_url or --base-url)")
	ErrInvalidContractNode  = errors.New("contract node must be a mapping")
	ErrInvalidHeader        = errors.New("header must be name=value")
	ErrInvalidKeyValue      = errors.New("expected name=value")
	ErrInvalidStatuses      = errors.New("statuses must be a list of integers")
)

// Contract is a parsed contract file: the bindable route tree plus the flat
// rows used for display.
type Contract struct {
	BaseURL string
	Headers map[string]string
	Tree    restbind.Tree
	Rows    []RouteRow
}

// RouteRow is one route flattened for display.
type RouteRow struct {
	Key      string
	Method   string
	Template string
	Statuses []int
}

// contractFile is the YAML layout of a contract.
type contractFile struct {
	BaseURL string            `yaml:"base_url"`
	Headers map[string]string `yaml:"headers"`
	Routes  map[string]any    `yaml:"routes"`
}

// LoadContract reads and parses a contract file.
func LoadContract(path string) (*Contract, error) {
	if path == "" {
		return nil, ErrContractFileRequired
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contract file: %w", err)
	}

	var file contractFile

	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing contract file: %w", err)
	}

	tree, rows, err := buildTree(file.Routes, nil)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	return &Contract{
		BaseURL: file.BaseURL,
		Headers: file.Headers,
		Tree:    tree,
		Rows:    rows,
	}, nil
}

// buildTree converts the decoded YAML mapping into a route tree. A mapping
// with string "method" and "path" values is a leaf; everything else nests.
func buildTree(node map[string]any, prefix []string) (restbind.Tree, []RouteRow, error) {
	tree := make(restbind.Tree, len(node))

	var rows []RouteRow

	for key, child := range node {
		childMap, ok := child.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrInvalidContractNode, strings.Join(append(prefix, key), "."))
		}

		if isLeaf(childMap) {
			route, row, err := buildRoute(childMap, append(prefix, key))
			if err != nil {
				return nil, nil, err
			}

			tree[key] = route
			rows = append(rows, row)

			continue
		}

		subTree, subRows, err := buildTree(childMap, append(prefix, key))
		if err != nil {
			return nil, nil, err
		}

		tree[key] = subTree
		rows = append(rows, subRows...)
	}

	return tree, rows, nil
}

func isLeaf(node map[string]any) bool {
	_, hasMethod := node["method"].(string)
	_, hasPath := node["path"].(string)

	return hasMethod && hasPath
}

func buildRoute(node map[string]any, path []string) (restbind.Route, RouteRow, error) {
	method, _ := node["method"].(string)
	template, _ := node["path"].(string)
	method = strings.ToUpper(method)

	statuses, err := parseStatuses(node["statuses"])
	if err != nil {
		return restbind.Route{}, RouteRow{}, fmt.Errorf("route %s: %w", strings.Join(path, "."), err)
	}

	responses := restbind.StatusShapes{CatchAll: restbind.AnyShape{}}

	if len(statuses) > 0 {
		byStatus := make(map[int]restbind.Shape, len(statuses))
		for _, status := range statuses {
			byStatus[status] = restbind.AnyShape{}
		}

		responses = restbind.StatusShapes{ByStatus: byStatus}
	}

	route := restbind.Route{
		Method:    method,
		Path:      restbind.PathTemplate(template),
		Responses: responses,
	}

	row := RouteRow{
		Key:      strings.Join(path, "."),
		Method:   method,
		Template: template,
		Statuses: statuses,
	}

	return route, row, nil
}

func parseStatuses(value any) ([]int, error) {
	if value == nil {
		return nil, nil
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidStatuses, value)
	}

	statuses := make([]int, 0, len(items))

	for _, item := range items {
		switch status := item.(type) {
		case int:
			statuses = append(statuses, status)
		case string:
			parsed, err := strconv.Atoi(status)
			if err != nil {
				return nil, fmt.Errorf("parsing status %q: %w", status, err)
			}

			statuses = append(statuses, parsed)
		default:
			return nil, fmt.Errorf("%w: got %T", ErrInvalidStatuses, item)
		}
	}

	return statuses, nil
}
