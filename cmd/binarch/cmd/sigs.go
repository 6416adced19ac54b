/*
Copyright © 2018-2023 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/WorksButNotTested/binarch2/internal/colors"
	"github.com/WorksButNotTested/binarch2/pkg/signature"
	"github.com/WorksButNotTested/binarch2/pkg/table"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type sigInfo struct {
	Name    string `json:"name"`
	Arch    string `json:"arch"`
	Endian  string `json:"endian"`
	Pattern string `json:"pattern"`
	Length  int    `json:"length"`
	Refined bool   `json:"refined"`
}

func init() {
	rootCmd.AddCommand(sigsCmd)

	sigsCmd.Flags().StringP("sigs", "s", "", "Extra signature rules (JSON/YAML file or directory)")
	sigsCmd.Flags().StringP("arch", "a", "", "Only list signatures for this architecture")
	sigsCmd.Flags().Bool("json", false, "Output as JSON")
	viper.BindPFlag("sigs.sigs", sigsCmd.Flags().Lookup("sigs"))
	viper.BindPFlag("sigs.arch", sigsCmd.Flags().Lookup("arch"))
	viper.BindPFlag("sigs.json", sigsCmd.Flags().Lookup("json"))
}

// sigsCmd represents the sigs command
var sigsCmd = &cobra.Command{
	Use:           "sigs",
	Aliases:       []string{"signatures"},
	Short:         "List the signatures used to classify files",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Example: heredoc.Doc(`
		# List the built-in signatures
		$ binarch sigs

		# Check that a rule file loads and see it next to the built-in rules
		$ binarch sigs --sigs my-rules.yaml --arch mips
	`),
	RunE: func(cmd *cobra.Command, args []string) error {

		cat, err := loadCatalog(viper.GetString("sigs.sigs"))
		if err != nil {
			return err
		}

		var arch *signature.Arch
		if name := viper.GetString("sigs.arch"); name != "" {
			a, err := signature.ParseArch(name)
			if err != nil {
				return errors.Wrap(err, "invalid --arch")
			}
			arch = &a
		}

		var sigs []sigInfo
		for _, r := range cat.Rules() {
			if arch != nil && r.Kind.Arch != *arch {
				continue
			}
			sigs = append(sigs, sigInfo{
				Name:    r.Name,
				Arch:    r.Kind.Arch.String(),
				Endian:  r.Kind.Endian.String(),
				Pattern: r.Compiled().String(),
				Length:  r.Compiled().Len(),
				Refined: r.Refined(),
			})
		}

		if viper.GetBool("sigs.json") {
			if sigs == nil {
				sigs = []sigInfo{}
			}
			dat, err := json.MarshalIndent(sigs, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal json: %v", err)
			}
			if colors.Enabled() {
				return quick.Highlight(cmd.OutOrStdout(), string(dat)+"\n", "json", "terminal256", "nord")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(dat))
			return nil
		}

		tbl := table.NewTable(colors.Enabled())
		tbl.SetHeaders("Name", "Arch", "Endian", "Pattern", "Len", "Check")
		tbl.SetAlignment(4, lipgloss.Right)
		for _, s := range sigs {
			check := ""
			if s.Refined {
				check = "yes"
			}
			tbl.AppendRow(s.Name, s.Arch, s.Endian, strings.ToLower(s.Pattern), fmt.Sprint(s.Length), check)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d signatures, longest pattern %d bytes\n", len(sigs), cat.MaxPatternLen())

		return nil
	},
}
