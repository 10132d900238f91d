package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSettingsResource(srv, svc)
	registerTodayResource(srv, svc)
	registerReportTemplate(srv, svc)
}

func registerSettingsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"sidekick://settings",
		"Settings",
		mcp.WithResourceDescription("Reminder toggles, metabolism offset and intake defaults."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if svc.App == nil {
			return nil, errNoApp
		}
		view, err := svc.App.Settings(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"notificationSettings":    view.Notifications,
			"metabolismOffsetMinutes": view.OffsetMinutes,
			"lastDoseMg":              int(view.LastDose),
			"lastWithFood":            view.LastWithFood,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTodayResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"sidekick://today",
		"Today",
		mcp.WithResourceDescription("Counts of what was logged today, the latest intake and the sleep check."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if svc.App == nil {
			return nil, errNoApp
		}
		stats, err := svc.App.Stats(ctx, time.Time{})
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"date":         stats.Date.Format("2006-01-02"),
			"counts":       stats.Counts,
			"sleepQuality": stats.SleepQuality,
		}
		if stats.LatestIntake != nil {
			payload["latestIntake"] = toIntakeDTO(*stats.LatestIntake)
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerReportTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"sidekick://report/{days}",
		"Report",
		mcp.WithTemplateDescription("Markdown report of the last N calendar days."),
		mcp.WithTemplateMIMEType("text/markdown"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		days, err := templateInt(request.Params.Arguments["days"])
		if err != nil {
			return nil, fmt.Errorf("days: %w", err)
		}

		md, err := svc.ExportReport(ctx, days)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     md,
			},
		}, nil
	})
}

// templateInt reads a URI template variable; values may arrive as a string
// or a one-element list depending on the matcher.
func templateInt(v any) (int, error) {
	switch t := v.(type) {
	case string:
		return strconv.Atoi(t)
	case []string:
		if len(t) == 1 {
			return strconv.Atoi(t[0])
		}
	case float64:
		return int(t), nil
	}
	return 0, fmt.Errorf("unexpected value %v", v)
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
