package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/sidekick/pkg/entry"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerActivityFeedTool(srv, svc)
	registerExportReportTool(srv, svc)
	registerEffectCurveTool(srv, svc)
	registerLogNoteTool(srv, svc)
	registerLogCheckinTool(srv, svc)
	registerLogMealTool(srv, svc)
	registerLogMedicationTool(srv, svc)
}

func registerActivityFeedTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"activity_feed",
		mcp.WithDescription("List logged intakes, check-ins, meals, sleep checks and notes, newest first."),
		mcp.WithString("window",
			mcp.Description("Look-back window ending now such as 12h, 1d or 1w. Defaults to 1d."),
		),
		mcp.WithString("since",
			mcp.Description("Optional RFC3339 start; overrides window."),
		),
		mcp.WithString("until",
			mcp.Description("Optional RFC3339 end; defaults to now."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Window string `json:"window"`
			Since  string `json:"since"`
			Until  string `json:"until"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		entries, err := svc.ActivityFeed(ctx, FeedOptions{Window: args.Window, Since: args.Since, Until: args.Until})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerExportReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"export_report",
		mcp.WithDescription("Render a day-by-day Markdown report of the recent journal, today first."),
		mcp.WithNumber("days",
			mcp.Description("Number of calendar days to include, counting today. Defaults to 7."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Days *int `json:"days"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		days := 7
		if args.Days != nil {
			days = *args.Days
		}

		md, err := svc.ExportReport(ctx, days)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(md), nil
	})
}

func registerEffectCurveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"effect_curve",
		mcp.WithDescription("Sample the expected effect curve of today's latest intake over twelve hours and locate now on it."),
		mcp.WithNumber("doseMg",
			mcp.Description("Optional dose override, 10 or 20."),
		),
		mcp.WithNumber("offsetMinutes",
			mcp.Description("Optional metabolism offset override in minutes, clamped to -60..60."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			DoseMg        *int `json:"doseMg"`
			OffsetMinutes *int `json:"offsetMinutes"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		curve, err := svc.EffectCurve(ctx, args.DoseMg, args.OffsetMinutes)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(curve)
	})
}

func registerLogNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_note",
		mcp.WithDescription("Record a free-text note. Long notes are cut to 500 characters."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Note text."),
		),
		mcp.WithString("at",
			mcp.Description("Optional RFC3339 time; defaults to now."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.LogNote(ctx, content, request.GetString("at", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerLogCheckinTool(srv *server.MCPServer, svc *Service) {
	rating := func(name, what string) mcp.ToolOption {
		return mcp.WithNumber(name,
			mcp.Description(fmt.Sprintf("Optional %s rating from %d to %d.", what, entry.MinRating, entry.MaxRating)),
			mcp.Min(entry.MinRating),
			mcp.Max(entry.MaxRating),
		)
	}
	tool := mcp.NewTool(
		"log_checkin",
		mcp.WithDescription("Record how the user feels. Give at least one rating or a note."),
		rating("mood", "mood"),
		rating("focus", "focus"),
		rating("irritability", "irritability"),
		rating("restlessness", "restlessness"),
		mcp.WithString("note",
			mcp.Description("Optional note."),
		),
		mcp.WithString("at",
			mcp.Description("Optional RFC3339 time; defaults to now."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Mood         int    `json:"mood"`
			Focus        int    `json:"focus"`
			Irritability int    `json:"irritability"`
			Restlessness int    `json:"restlessness"`
			Note         string `json:"note"`
			At           string `json:"at"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.LogCheckin(ctx, CheckinOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerLogMealTool(srv *server.MCPServer, svc *Service) {
	types := make([]string, 0, len(entry.MealTypes))
	for _, t := range entry.MealTypes {
		types = append(types, string(t))
	}
	tool := mcp.NewTool(
		"log_meal",
		mcp.WithDescription("Record a meal. Descriptions are cut to 120 characters."),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Meal slot."),
			mcp.Enum(types...),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What was eaten."),
		),
		mcp.WithString("at",
			mcp.Description("Optional RFC3339 time; defaults to now."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mealType, err := request.RequireString("type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		description, err := request.RequireString("description")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.LogMeal(ctx, mealType, description, request.GetString("at", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerLogMedicationTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_medication",
		mcp.WithDescription("Record a medication intake."),
		mcp.WithNumber("doseMg",
			mcp.Required(),
			mcp.Description("Dose in milligrams, 10 or 20."),
		),
		mcp.WithBoolean("withFood",
			mcp.Description("Whether it was taken with food. Defaults to the last intake's value."),
		),
		mcp.WithString("note",
			mcp.Description("Optional note."),
		),
		mcp.WithString("at",
			mcp.Description("Optional RFC3339 time; defaults to now."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			DoseMg   int    `json:"doseMg"`
			WithFood *bool  `json:"withFood"`
			Note     string `json:"note"`
			At       string `json:"at"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.LogMedication(ctx, MedicationOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
