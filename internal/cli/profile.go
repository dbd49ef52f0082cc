package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Player profile media commands",
	}

	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileGetCmd())
	cmd.AddCommand(newProfileSetCmd())
	cmd.AddCommand(newProfileUploadCmd())

	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <slug>",
		Short: "List profile images on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Profiles

			if err := client.Get(cmd.Context(), boardPath(args[0], "profiles"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newProfileGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug> <name>",
		Short: "Show a player's profile image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ProfileLink

			if err := client.Get(cmd.Context(), boardPath(args[0], "profiles", args[1]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newProfileSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <slug> <name> <image-url>",
		Short: "Link an already hosted image to a player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"imageUrl": args[2]}
			var result ProfileLink

			if err := client.Put(cmd.Context(), boardPath(args[0], "profiles", args[1]), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newProfileUploadCmd() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <slug> <name> <file>",
		Short: "Upload an image or video and link it to a player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, name, path := args[0], args[1], args[2]

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			if contentType == "" {
				contentType = mime.TypeByExtension(filepath.Ext(path))
			}
			if contentType == "" {
				return fmt.Errorf("cannot detect content type of %s, pass --content-type", path)
			}

			// Step 1: ask the server for a presigned upload URL
			var upload Upload
			req := map[string]any{"contentType": contentType, "size": info.Size()}
			if err := client.Post(cmd.Context(), boardPath(slug, "profiles", name, "upload"), req, &upload); err != nil {
				return err
			}

			// Step 2: send the file to object storage
			if err := client.UploadFile(cmd.Context(), upload.UploadURL, upload.ContentType, f, info.Size()); err != nil {
				return err
			}

			// Step 3: link the stored asset to the player
			var link ProfileLink
			if err := client.Put(cmd.Context(), boardPath(slug, "profiles", name), map[string]string{"imageUrl": upload.ImageURL}, &link); err != nil {
				return err
			}

			output(cmd).Print(upload)
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "Media type, detected from the file extension if omitted")

	return cmd
}
