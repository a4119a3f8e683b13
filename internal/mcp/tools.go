// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: generation of the MCP tool definitions from the session's
// operation catalog.

import (
	"context"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/slackmcp"
)

// tools returns one MCP tool per operation in the session catalog.
func (s *Server) tools() []mcpsrv.ServerTool {
	cat := s.sess.Catalog()
	tools := make([]mcpsrv.ServerTool, 0, len(cat))
	for _, d := range cat {
		tools = append(tools, s.toolFor(d))
	}
	return tools
}

// toolFor builds the MCP tool definition and handler for one catalog
// operation.  The argument schema is translated field by field; the handler
// hands the raw argument map to the dispatcher, which owns validation.
func (s *Server) toolFor(d *slackmcp.Descriptor) mcpsrv.ServerTool {
	opts := []mcplib.ToolOption{
		mcplib.WithDescription(d.Help),
	}
	for _, a := range d.Args {
		var propOpts []mcplib.PropertyOption
		if a.Help != "" {
			propOpts = append(propOpts, mcplib.Description(a.Help))
		}
		if a.Required {
			propOpts = append(propOpts, mcplib.Required())
		}
		switch a.Kind {
		case slackmcp.ArgInt:
			opts = append(opts, mcplib.WithNumber(a.Name, propOpts...))
		case slackmcp.ArgBool:
			opts = append(opts, mcplib.WithBoolean(a.Name, propOpts...))
		default:
			opts = append(opts, mcplib.WithString(a.Name, propOpts...))
		}
	}
	tool := mcplib.NewTool(d.Name, opts...)

	name := d.Name
	handler := func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		res, err := s.sess.Dispatch(ctx, name, req.GetArguments())
		if err != nil {
			s.logger.ErrorContext(ctx, "tool call failed", "tool", name, "error", err)
			return resultErr(err), nil
		}
		return resultJSON(res)
	}
	return mcpsrv.ServerTool{Tool: tool, Handler: handler}
}
