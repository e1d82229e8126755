package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/uniongov/union-core/api"
	"github.com/uniongov/union-core/app"
	"github.com/uniongov/union-core/utils"
)

// flags of the client commands
const (
	FlagNode = "node"
	FlagFrom = "from"
)

var queries = []string{
	app.QueryGroups, app.QueryGroup, app.QueryGroupsOf, app.QueryProfiles, app.QueryProfile, app.QueryBalance,
	app.QueryPermissions, app.QueryPermission, app.QueryAccessConfigs, app.QueryAccessConfig, app.QueryHasAccess,
	app.QueryVotingConfigs, app.QueryVotingConfig, app.QueryVotings, app.QueryVoting, app.QueryVotes,
	app.QueryNestedVotingConfigs, app.QueryNestedVotingConfig, app.QueryNestedVotings, app.QueryNestedVoting,
	app.QueryOutboundVote,
}

// QueryCmd returns the command that queries a running union
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "query [query] [args...]",
		Aliases:   []string{"q"},
		Short:     "Query the state of a running union",
		Long:      "Query the state of a running union. Available queries: " + strings.Join(queries, ", "),
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: queries,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := nodeAddress(cmd)
			if err != nil {
				return err
			}

			segments := make([]string, 0, len(args))
			for _, arg := range args {
				segments = append(segments, url.PathEscape(arg))
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, node+"/query/"+strings.Join(segments, "/"), nil)
			if err != nil {
				return err
			}

			return send(cmd.OutOrStdout(), req)
		},
	}

	addNodeFlag(cmd)

	return cmd
}

// CallCmd returns the command that invokes an endpoint of a running union
func CallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call [method] [json args]",
		Short: "Invoke an endpoint of a running union on behalf of the --from principal",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := nodeAddress(cmd)
			if err != nil {
				return err
			}

			from, err := cmd.Flags().GetString(FlagFrom)
			if err != nil {
				return err
			}

			var body []byte
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return errors.New("arguments must be valid JSON")
				}
				body = []byte(args[1])
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, node+"/call/"+url.PathEscape(args[0]), bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set(api.CallerHeader, from)

			return send(cmd.OutOrStdout(), req)
		},
	}

	addNodeFlag(cmd)
	cmd.Flags().String(FlagFrom, "", "principal the call is made on behalf of")
	_ = cmd.MarkFlagRequired(FlagFrom)

	return cmd
}

func addNodeFlag(cmd *cobra.Command) {
	cmd.Flags().String(FlagNode, "", "address of the union API, defaults to the configured listen address")
}

func nodeAddress(cmd *cobra.Command) (string, error) {
	node, err := cmd.Flags().GetString(FlagNode)
	if err != nil {
		return "", err
	}

	if node == "" {
		node = "http://" + GetServerContext(cmd).Config.API.ListenAddress
	}

	return strings.TrimSuffix(node, "/"), nil
}

func send(out io.Writer, req *http.Request) error {
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	var payload json.RawMessage
	if err := utils.ReadResponse(res, &payload); err != nil {
		return err
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, payload, "", "  "); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, indented.String())
	return err
}
