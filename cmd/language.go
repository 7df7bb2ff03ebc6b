package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"elocmetrix/internal/languages"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示已注册语言、后缀及对应的注释标记。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已注册语言、后缀及注释语法",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tLINE MARKERS\tBLOCK PAIRS"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%s\t%s\n",
					item.Name,
					strings.Join(item.Extensions, ", "),
					strings.Join(item.Descriptor.LineMarkers, ", "),
					formatBlockPairs(item.Descriptor.BlockPairs),
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}

// formatBlockPairs 把块注释标记渲染成 "open close" 列表。
func formatBlockPairs(pairs []languages.BlockPair) string {
	rendered := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		rendered = append(rendered, pair.Open+" "+pair.Close)
	}
	return strings.Join(rendered, ", ")
}
