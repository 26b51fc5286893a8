package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"go-game-hub/archive"
	"go-game-hub/types"
	"go-game-hub/utils/fileio"

	"github.com/spf13/cobra"
)

func (c *cli) printGames(games []types.Game, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, g := range games {
		origin := "base"
		if g.IsCustom {
			origin = "custom"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.ID, g.Title, origin)
	}
	return w.Flush()
}

func (c *cli) listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printGames(c.hub.Reload(c.ctx(cmd)), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	var req types.NewGame
	var contentFile string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom game",
		Long: `Adds a custom game backed by a URL or by inline HTML.

Example:
  hubctl add --title "Snake" --type url --content https://example.com/snake
  hubctl add --title "Quiz" --type html --content-file quiz.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("failed to read content file: %w", err)
				}
				req.Content = string(data)
			}
			games, err := c.hub.AddGame(c.ctx(cmd), req)
			if err != nil {
				return err
			}
			added := games[len(games)-1]
			fmt.Fprintf(c.out, "added %s\n", added.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "game title")
	cmd.Flags().StringVar(&req.Description, "description", "", "game description")
	cmd.Flags().StringVar(&req.Kind, "type", types.KindURL, "content type: url or html")
	cmd.Flags().StringVar(&req.Content, "content", "", "URL or HTML markup")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read the content from a file")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, _, err := c.hub.DeleteGame(c.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(c.out, "no custom game %s\n", args[0])
				return nil
			}
			fmt.Fprintf(c.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export custom games as a JSON backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.hub.Reload(c.ctx(cmd))
			data, err := c.hub.ExportGames()
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = c.out.Write(data)
				return err
			}
			if err := fileio.WriteFileAtomic(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			fmt.Fprintf(c.out, "exported to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import custom games from a .json, .zip, .7z or .rar backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := archive.ReadBackup(args[0])
			if err != nil {
				return err
			}
			added, _, err := c.hub.ImportGames(c.ctx(cmd), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "imported %d games\n", added)
			return nil
		},
	}
}
