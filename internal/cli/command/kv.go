package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shrtyk/memdb/internal/api/grpc/kvpb"
)

func getCommand(dial DialFunc) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value stored under KEY",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if err := argsExactly(c, 1); err != nil {
				return err
			}
			key := []byte(c.Args().Get(0))

			return withClient(c, dial, func(ctx context.Context, client kvpb.KVStoreClient) error {
				resp, err := client.Get(ctx, kvpb.NewGetRequest(key))
				if status.Code(err) == codes.NotFound {
					return reply(c.App.Writer, nil, false)
				}
				if err != nil {
					return fmt.Errorf("get %q: %w", key, err)
				}
				return reply(c.App.Writer, resp.GetEntry().GetValue(), true)
			})
		},
	}
}

func setCommand(dial DialFunc) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store VALUE under KEY and print the value it replaced",
		ArgsUsage: "KEY VALUE",
		Action: func(c *cli.Context) error {
			if err := argsExactly(c, 2); err != nil {
				return err
			}
			key, value := []byte(c.Args().Get(0)), []byte(c.Args().Get(1))

			return withClient(c, dial, func(ctx context.Context, client kvpb.KVStoreClient) error {
				resp, err := client.Put(ctx, kvpb.NewPutRequest(key, value))
				if err != nil {
					return fmt.Errorf("set %q: %w", key, err)
				}
				return reply(c.App.Writer, resp.GetPrevious(), resp.GetReplaced())
			})
		},
	}
}

func delCommand(dial DialFunc) *cli.Command {
	return &cli.Command{
		Name:      "del",
		Aliases:   []string{"delete"},
		Usage:     "Remove KEY and print the value it held",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if err := argsExactly(c, 1); err != nil {
				return err
			}
			key := []byte(c.Args().Get(0))

			return withClient(c, dial, func(ctx context.Context, client kvpb.KVStoreClient) error {
				resp, err := client.Delete(ctx, kvpb.NewDeleteRequest(key))
				if err != nil {
					return fmt.Errorf("del %q: %w", key, err)
				}
				return reply(c.App.Writer, resp.GetEntry().GetValue(), resp.GetDeleted())
			})
		},
	}
}
