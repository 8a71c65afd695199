package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/schemalens/schemalens/internal/core/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server metadata
const serverName = "schemalens"

// Argument defaults applied when a caller omits the optional fields.
// The sample-row bound is configurable per deployment; this constant is
// the fallback when the server is wired without one.
const (
	defaultIncludeSamples = true
	defaultMaxSampleRows  = 5
)

// Tool descriptions
const (
	descAnalyzeSchema = "Build a full structural model of the database schema: tables with columns " +
		"(types, nullability, primary keys), indexes, declared foreign keys, and a few sample rows per table. " +
		"Also returns all table relationships, both declared foreign keys and relationships inferred " +
		"from *_id naming conventions with a confidence value. " +
		"Use this first to understand an unfamiliar database."

	descGetRelationships = "List relationships between tables: declared foreign-key constraints (confidence 1.0) " +
		"plus relationships inferred from column naming patterns like user_id -> users.id. " +
		"Optionally restrict to relationships touching a single table. " +
		"Use this to find JOIN paths, especially in databases without explicit foreign keys."

	descValidateSchema = "Run structural integrity checks against the schema: tables without a primary key, " +
		"foreign keys referencing tables or columns that no longer exist, duplicate indexes, " +
		"and nullable primary-key columns. " +
		"Findings are ranked by an insight/context/execution priority score, highest first."

	descSuggestOptimizations = "Suggest performance improvements: foreign-key columns with no index to serve lookups, " +
		"and indexes made redundant by a longer index with the same leading columns. " +
		"Findings are ranked by an insight/context/execution priority score, highest first."

	descEnvironmentParam = "Deployment target to analyze: development, staging, or production"

	descIncludeSamplesParam = "Include a few sample rows per table. Defaults to true."

	descMaxSampleRowsParam = "Maximum sample rows per table. Defaults to the server's configured bound."

	descTableNameParam = "Restrict to relationships where this table is source or target (optional)"
)

// RegisterTools declares the four analysis tools. maxSampleRows is the
// deployment-configured bound applied when a caller omits
// max_sample_rows.
func RegisterTools(s *server.MCPServer, analysis *service.AnalysisService, maxSampleRows int) {
	if maxSampleRows < 0 {
		maxSampleRows = defaultMaxSampleRows
	}

	s.AddTool(
		mcp.NewTool("analyze_schema",
			mcp.WithDescription(descAnalyzeSchema),
			mcp.WithString("environment",
				mcp.Required(),
				mcp.Description(descEnvironmentParam),
			),
			mcp.WithBoolean("include_samples",
				mcp.Description(descIncludeSamplesParam),
			),
			mcp.WithNumber("max_sample_rows",
				mcp.Description(descMaxSampleRowsParam),
			),
		),
		analyzeSchemaHandler(analysis, maxSampleRows),
	)

	s.AddTool(
		mcp.NewTool("get_relationships",
			mcp.WithDescription(descGetRelationships),
			mcp.WithString("environment",
				mcp.Required(),
				mcp.Description(descEnvironmentParam),
			),
			mcp.WithString("table_name",
				mcp.Description(descTableNameParam),
			),
		),
		getRelationshipsHandler(analysis),
	)

	s.AddTool(
		mcp.NewTool("validate_schema",
			mcp.WithDescription(descValidateSchema),
			mcp.WithString("environment",
				mcp.Required(),
				mcp.Description(descEnvironmentParam),
			),
		),
		validateSchemaHandler(analysis),
	)

	s.AddTool(
		mcp.NewTool("suggest_optimizations",
			mcp.WithDescription(descSuggestOptimizations),
			mcp.WithString("environment",
				mcp.Required(),
				mcp.Description(descEnvironmentParam),
			),
		),
		suggestOptimizationsHandler(analysis),
	)
}

func analyzeSchemaHandler(analysis *service.AnalysisService, defaultSampleRows int) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		environment, ok := args["environment"].(string)
		if !ok || environment == "" {
			return mcp.NewToolResultError("environment is required"), nil
		}

		includeSamples := defaultIncludeSamples
		if raw, present := args["include_samples"]; present {
			if b, ok := raw.(bool); ok {
				includeSamples = b
			}
		}

		maxSampleRows := defaultSampleRows
		if raw, present := args["max_sample_rows"]; present {
			if n, ok := raw.(float64); ok {
				maxSampleRows = int(n)
			}
		}

		ctx = service.WithToolName(ctx, "analyze_schema")
		result, err := analysis.AnalyzeSchema(ctx, environment, includeSamples, maxSampleRows)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("schema analysis failed: %v", err)), nil
		}

		return marshalResult(result)
	}
}

func getRelationshipsHandler(analysis *service.AnalysisService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		environment, ok := args["environment"].(string)
		if !ok || environment == "" {
			return mcp.NewToolResultError("environment is required"), nil
		}

		tableName, _ := args["table_name"].(string)

		ctx = service.WithToolName(ctx, "get_relationships")
		result, err := analysis.GetRelationships(ctx, environment, tableName)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("relationship resolution failed: %v", err)), nil
		}

		return marshalResult(result)
	}
}

func validateSchemaHandler(analysis *service.AnalysisService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		environment, ok := request.GetArguments()["environment"].(string)
		if !ok || environment == "" {
			return mcp.NewToolResultError("environment is required"), nil
		}

		ctx = service.WithToolName(ctx, "validate_schema")
		result, err := analysis.ValidateSchema(ctx, environment)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("schema validation failed: %v", err)), nil
		}

		return marshalResult(result)
	}
}

func suggestOptimizationsHandler(analysis *service.AnalysisService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		environment, ok := request.GetArguments()["environment"].(string)
		if !ok || environment == "" {
			return mcp.NewToolResultError("environment is required"), nil
		}

		ctx = service.WithToolName(ctx, "suggest_optimizations")
		result, err := analysis.SuggestOptimizations(ctx, environment)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("optimization analysis failed: %v", err)), nil
		}

		return marshalResult(result)
	}
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
