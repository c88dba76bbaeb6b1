package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/clippay/settlement-engine/pkg/crypto"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

type generateKeypairCmdOptions struct {
	Path string
}

func NewGenerateKeypairCommand() *cobra.Command {
	opts := &generateKeypairCmdOptions{}

	cmd := &cobra.Command{
		Use:   "generate-keypair",
		Short: "Generate new public/private keypair for signing settlement bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateKeypairHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Path, "path", "/data/keys", `Path to save to key pair file`)

	return cmd
}

func generateKeypairHandler(opts *generateKeypairCmdOptions, _ *cobra.Command, _ []string) error {
	fmt.Printf("Generating key pair\n")
	privateKey, publicKey, err := crypto.GenerateKeypair()
	if err != nil {
		return errors.Wrap(err, "generate keypair")
	}

	fmt.Printf("Public key: %s\n", publicKey)
	if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return errors.Wrap(err, "create directory")
	}

	privateKeyPath := path.Join(opts.Path, "priv.key")

	if _, err := os.Stat(privateKeyPath); err == nil {
		fmt.Printf("Existing private key found at %s\n[WARNING] THE EXISTING PRIVATE KEY WILL BE LOST\nType [replace] to replace existing private key: ", privateKeyPath)
		var ans string
		fmt.Scanln(&ans)
		if ans != "replace" {
			fmt.Printf("Keypair generation aborted\n")
			return nil
		}
	}

	if err := os.WriteFile(privateKeyPath, []byte(privateKey), 0o600); err != nil {
		return errors.Wrap(err, "write private key file")
	}
	fmt.Printf("Private key saved at %s\n", privateKeyPath)

	publicKeyPath := path.Join(opts.Path, "pub.key")
	if err := os.WriteFile(publicKeyPath, []byte(publicKey), 0o644); err != nil {
		return errors.Wrap(err, "write public key file")
	}
	fmt.Printf("Public key saved at %s\n", publicKeyPath)
	return nil
}
