/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// Table returns a table with one row per node of the graph, rendered for a terminal.
// It is meant for debugging, the format is not stable.
func (g *Graph) Table() string {
	if !g.Ok() {
		return g.String()
	}
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Id", "Name", "Kind", "Op", "Shape", "Strides", "Operands", "Consumer", "Memory")
	for _, node := range g.nodes {
		operands := make([]string, 0, 2)
		for _, operand := range node.Operands() {
			operands = append(operands, fmt.Sprintf("#%d", operand.id))
		}
		consumer := "-"
		if node.consumer != InvalidNodeId {
			consumer = fmt.Sprintf("#%d", node.consumer)
		}
		memory := humanize.Bytes(uint64(node.value.Memory() + node.gradient.Memory()))
		if node.value.IsView() {
			memory += " (view)"
		}
		table.Row(
			fmt.Sprintf("#%d", node.id),
			node.name,
			node.kind.String(),
			node.op.String(),
			node.Shape().String(),
			fmt.Sprintf("%v", node.value.Strides()),
			strings.Join(operands, ", "),
			consumer,
			memory,
		)
	}
	return fmt.Sprintf("Graph %q (%s allocated):\n%s", g.name, humanize.Bytes(g.allocated), table.Render())
}
