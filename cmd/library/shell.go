package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xiebiao/library/internal/interface/cli"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "启动交互式菜单",
	Long:  "从标准输入读取菜单命令（编号1-9或命令名），结果输出到标准输出，输入结束或选择Exit时退出。",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := InitializeApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return cli.NewShell(app.Session, os.Stdin, os.Stdout).Run(cmd.Context())
	},
}
