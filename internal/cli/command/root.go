// Package command provides the memdbctl command definitions.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/shrtyk/memdb/internal/api/grpc/kvpb"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const nilReply = "(nil)"

// DialFunc opens a client to the server at addr. The returned closer releases
// the connection.
type DialFunc func(ctx context.Context, addr string) (kvpb.KVStoreClient, io.Closer, error)

// DialGRPC connects over plaintext gRPC.
func DialGRPC(_ context.Context, addr string) (kvpb.KVStoreClient, io.Closer, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create grpc client for %s: %w", addr, err)
	}
	return kvpb.NewKVStoreClient(conn), conn, nil
}

// App creates the CLI application. Replies are written to out.
func App(dial DialFunc, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "memdbctl",
		Usage:     "memdb command-line client",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:     globalFlags(),
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			getCommand(dial),
			setCommand(dial),
			delCommand(dial),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Usage:   "memdb gRPC address",
			EnvVars: []string{"MEMDB_ADDR"},
			Value:   "localhost:16701",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "per request timeout",
			Value:   5 * time.Second,
		},
	}
}

// withClient runs fn with a connected client and a deadline-bound context.
func withClient(c *cli.Context, dial DialFunc, fn func(ctx context.Context, client kvpb.KVStoreClient) error) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	client, closer, err := dial(ctx, c.String("addr"))
	if err != nil {
		return err
	}

	return errors.Join(fn(ctx, client), closer.Close())
}

func argsExactly(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d\nusage: %s %s",
			c.Command.Name, n, c.NArg(), c.App.Name, c.Command.ArgsUsage)
	}
	return nil
}

func reply(w io.Writer, b []byte, ok bool) error {
	var err error
	if !ok {
		_, err = fmt.Fprintln(w, nilReply)
	} else {
		_, err = fmt.Fprintf(w, "%s\n", b)
	}
	return err
}
