package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daoforge-io/daoforge/pkg/deployment"
	"github.com/daoforge-io/daoforge/pkg/project"
)

var (
	initName    string
	initToken   string
	initSymbol  string
	initRPCURL  string
	initChainID int
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new DataDAO project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if initName == "" {
		initName = filepath.Base(absOrSelf(dir))
	}
	if initToken == "" || initSymbol == "" {
		return fmt.Errorf("--token and --symbol are required")
	}

	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	store := deployment.NewStore(dir)
	if _, err := os.Stat(store.Path()); err == nil {
		return fmt.Errorf("%s already contains a deployment record", dir)
	}

	cfg := &project.Config{
		Project: project.ProjectMeta{
			Name:        initName,
			TokenName:   initToken,
			TokenSymbol: initSymbol,
		},
		Network: project.Network{
			RPCURL:  initRPCURL,
			ChainID: initChainID,
		},
		Templates: project.Templates{Dir: "templates", Out: "."},
	}
	if err := cfg.WriteFile(filepath.Join(dir, project.ConfigFile)); err != nil {
		return err
	}

	rec := deployment.NewRecord(initName, initToken, initSymbol)
	if err := store.Save(rec); err != nil {
		return err
	}

	// Starter template so `daoforge render` works out of the box. The
	// placeholders resolve incrementally as steps complete.
	env := "" +
		"DLP_NAME={{projectName}}\n" +
		"TOKEN_NAME={{tokenName}}\n" +
		"TOKEN_SYMBOL={{tokenSymbol}}\n" +
		"RPC_URL={{rpcUrl}}\n" +
		"CHAIN_ID={{chainId}}\n" +
		"TOKEN_ADDRESS={{tokenAddress}}\n" +
		"PROXY_ADDRESS={{proxyAddress}}\n" +
		"DLP_ID={{dlpId}}\n"
	if err := os.WriteFile(filepath.Join(dir, "templates", ".env.template"), []byte(env), 0644); err != nil {
		return fmt.Errorf("write starter template: %w", err)
	}

	fmt.Printf("✓ initialized %s in %s\n", initName, dir)
	fmt.Println("Next: daoforge complete contractsDeployed")
	return nil
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "project name (defaults to the directory name)")
	initCmd.Flags().StringVar(&initToken, "token", "", "token name")
	initCmd.Flags().StringVar(&initSymbol, "symbol", "", "token symbol")
	initCmd.Flags().StringVar(&initRPCURL, "rpc-url", "https://rpc.moksha.vana.org", "chain RPC endpoint")
	initCmd.Flags().IntVar(&initChainID, "chain-id", 14800, "chain id")
	rootCmd.AddCommand(initCmd)
}
