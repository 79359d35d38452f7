/*
Axion CLI Calculator - Cobra Command Structure
===============================================
Author: Uthman
Year: 2025

This file implements the Cobra-based command structure for Axion calculator.
The root command launches the interactive REPL, while subcommands provide
direct access to specific features (conversion, history, etc.).
*/

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"Axion/builtin"
	"Axion/config"
	"Axion/constants"
	"Axion/eval"
	"Axion/expr"
	"Axion/history"
	"Axion/parser"
	"Axion/store"
	"Axion/units"
)

const banner = `
  ╔═╗─┐ ┬┬┌─┐┌┐┌
  ╠═╣┌┴┬┘││ ││││
  ╩ ╩┴ └─┴└─┘┘└┘
`

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// configFile and varsFile are where a session's settings and symbol
// table persist between runs; history keeps its own DefaultFile.
const (
	configFile = "config.yaml"
	varsFile   = "vars.json"
)

var rootCmd = &cobra.Command{
	Use:   "axion",
	Short: "Axion - A powerful CLI calculator",
	Long: colorCyan + banner + colorReset + `
` + colorBold + `Axion` + colorReset + ` is a feature-rich command-line calculator supporting:
  ` + colorGreen + `✓` + colorReset + ` Mathematical expressions with variables and user-defined functions
  ` + colorGreen + `✓` + colorReset + ` Unit conversions across multiple categories
  ` + colorGreen + `✓` + colorReset + ` Built-in mathematical functions and constants
  ` + colorGreen + `✓` + colorReset + ` Calculation history and session management
  ` + colorGreen + `✓` + colorReset + ` Customizable precision, angle unit and recursion depth`,
	Run: startREPL,
}

// session bundles everything a REPL turn needs: the reserved-function
// registry (built once, immutable), the symbol/function store and the
// active settings.
type session struct {
	registry *builtin.Registry
	store    *store.Store
	cfg      config.Config
}

// evalCmd evaluates a single expression and exits, for scripting and
// one-shot use: axion eval "2+3*4".
var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression and print the result",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		newSession().handleExpression(args[0])
	},
}

// convertCmd is the one-shot form of the REPL's "convert" command:
// axion convert <value> <from> to <to>.
var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> to <to>",
	Short: "Convert a value between compatible units",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		if args[2] != "to" {
			fmt.Println(colorRed + "Usage: " + colorReset + "axion convert <value> <from> to <to>")
			return
		}
		newSession().handleConversion("convert " + strings.Join(args, " "))
	},
}

// historyCmd prints the persisted calculation history and exits.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show calculation history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := history.ShowHistory(); err != nil {
			fmt.Printf(colorRed+"Error displaying history: %v\n"+colorReset, err)
		}
	},
}

// varsCmd prints the persisted symbol table and exits.
var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "Show stored variables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		newSession().showVariables()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize constants system. A missing constants.json is fine —
	// the built-in defaults (phi, c, G, h) already cover it.
	if err := constants.Load("constants.json"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf(colorYellow+"Warning: Failed to load constants: %v\n"+colorReset, err)
	}

	rootCmd.AddCommand(evalCmd, convertCmd, historyCmd, varsCmd)
}

func newSession() *session {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Printf(colorYellow+"Warning: Failed to load config: %v\n"+colorReset, err)
	}

	st := store.New()
	if err := st.Load(varsFile); err != nil {
		fmt.Printf(colorYellow+"Warning: Failed to load variables: %v\n"+colorReset, err)
	}
	constants.SeedInto(st)

	return &session{registry: builtin.New(), store: st, cfg: cfg}
}

// startREPL launches the interactive calculator session
func startREPL(cmd *cobra.Command, args []string) {
	scanner := bufio.NewScanner(os.Stdin)
	sess := newSession()

	printWelcome()

	for {
		fmt.Print(colorCyan + "» " + colorReset)

		if !scanner.Scan() {
			fmt.Println(colorYellow + "\nGoodbye!" + colorReset)
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			continue
		}

		switch {
		case input == "exit" || input == "quit":
			fmt.Println(colorYellow + "Goodbye!" + colorReset)
			return

		case input == "clear" || input == "cls":
			clearScreen()
			printWelcome()
			continue

		case input == "help":
			printHelp()
			continue

		case input == "variables" || input == "vars":
			sess.showVariables()
			continue

		case input == "history":
			if err := history.ShowHistory(); err != nil {
				fmt.Printf(colorRed+"Error displaying history: %v\n"+colorReset, err)
			}
			continue

		case strings.HasPrefix(input, "precision "):
			sess.handlePrecision(input)
			continue

		case strings.HasPrefix(input, "angle "):
			sess.handleAngleUnit(input)
			continue

		case strings.HasPrefix(input, "convert "):
			sess.handleConversion(input)
			continue

		default:
			sess.handleExpression(input)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Printf(colorRed+"Input error: %v\n"+colorReset, err)
	}
}

// printWelcome displays the welcome banner
func printWelcome() {
	fmt.Println(colorCyan + banner + colorReset)
	fmt.Println(colorBold + "  A Powerful CLI Calculator" + colorReset)
	fmt.Println(colorDim + "  Type 'help' for commands or 'exit' to quit\n" + colorReset)
}

// printHelp displays comprehensive command reference
func printHelp() {
	fmt.Println(colorCyan + "╔════════════════════════════════════════════════════════════╗" + colorReset)
	fmt.Println(colorCyan + "║" + colorBold + "                    AXION CALCULATOR                       " + colorReset + colorCyan + "║" + colorReset)
	fmt.Println(colorCyan + "╚════════════════════════════════════════════════════════════╝" + colorReset)
	fmt.Println()

	fmt.Println(colorYellow + "┌─ BASIC COMMANDS ─────────────────────────────────────────┐" + colorReset)
	fmt.Printf("│ %-25s %s\n", colorGreen+"<expression>"+colorReset, "Evaluate mathematical expression")
	fmt.Printf("│ %-25s %s\n", colorGreen+"help"+colorReset, "Show this help message")
	fmt.Printf("│ %-25s %s\n", colorGreen+"exit"+colorReset, "Exit the calculator")
	fmt.Printf("│ %-25s %s\n", colorGreen+"clear"+colorReset, "Clear terminal screen")
	fmt.Printf("│ %-25s %s\n", colorGreen+"variables"+colorReset, "Show all stored variables")
	fmt.Printf("│ %-25s %s\n", colorGreen+"history"+colorReset, "Display calculation history")
	fmt.Println(colorYellow + "└──────────────────────────────────────────────────────────┘" + colorReset)
	fmt.Println()

	fmt.Println(colorPurple + "┌─ MATHEMATICAL FUNCTIONS ─────────────────────────────────┐" + colorReset)
	fmt.Printf("│ %-25s %s\n", colorBold+"Trigonometric:"+colorReset, "sin, cos, tan, asin, acos, atan")
	fmt.Printf("│ %-25s %s\n", colorBold+"Logarithmic:"+colorReset, "log, log10, log_{base}(x)")
	fmt.Printf("│ %-25s %s\n", colorBold+"Exponential:"+colorReset, "exp, pow, sqrt, root")
	fmt.Printf("│ %-25s %s\n", colorBold+"Utility:"+colorReset, "abs, ceil, floor")
	fmt.Printf("│ %-25s %s\n", colorBold+"Statistical:"+colorReset, "mean([[...]]), median, mode, sum, product")
	fmt.Printf("│ %-25s %s\n", colorBold+"Other:"+colorReset, "max, min, derivative, ! (factorial)")
	fmt.Println(colorPurple + "└──────────────────────────────────────────────────────────┘" + colorReset)
	fmt.Println()

	fmt.Println(colorBlue + "┌─ VARIABLES & FUNCTIONS ──────────────────────────────────┐" + colorReset)
	fmt.Printf("│ %-25s %s\n", colorBold+"Assignment:"+colorReset, "x+1→g, area→a (store, right-to-left)")
	fmt.Printf("│ %-25s %s\n", colorBold+"Functions:"+colorReset, "x^2→square(x), then square(5)")
	fmt.Printf("│ %-25s %s\n", colorBold+"Constants:"+colorReset, "π, e, phi, c, G, h")
	fmt.Println(colorBlue + "└──────────────────────────────────────────────────────────┘" + colorReset)
	fmt.Println()

	fmt.Println(colorGreen + "┌─ UNIT CONVERSION ────────────────────────────────────────┐" + colorReset)
	fmt.Printf("│ %-25s %s\n", colorBold+"Syntax:"+colorReset, "convert <value> <from> to <to>")
	fmt.Printf("│ %-25s %s\n", colorBold+"Length:"+colorReset, "m, cm, mm, km, in, ft, yd, mi")
	fmt.Printf("│ %-25s %s\n", colorBold+"Weight:"+colorReset, "kg, g, mg, lb, oz, ton")
	fmt.Printf("│ %-25s %s\n", colorBold+"Time:"+colorReset, "s, ms, min, h, d")
	fmt.Printf("│ %-25s %s\n", colorBold+"Example:"+colorReset, colorCyan+"convert 100 cm to m"+colorReset)
	fmt.Println(colorGreen + "└──────────────────────────────────────────────────────────┘" + colorReset)
	fmt.Println()

	fmt.Println(colorYellow + "┌─ SETTINGS ───────────────────────────────────────────────┐" + colorReset)
	fmt.Printf("│ %-25s %s\n", colorGreen+"precision <n>"+colorReset, "Set significant digits (0-20)")
	fmt.Printf("│ %-25s %s\n", colorGreen+"angle <degrees|radians>"+colorReset, "Set trig angle unit")
	fmt.Println(colorYellow + "└──────────────────────────────────────────────────────────┘" + colorReset)
	fmt.Println()

	fmt.Println(colorCyan + "┌─ EXAMPLES ───────────────────────────────────────────────┐" + colorReset)
	fmt.Printf("│ %-25s %s\n", colorBold+"Basic:"+colorReset, "2 + 3 * 4, (10 - 5) / 2")
	fmt.Printf("│ %-25s %s\n", colorBold+"Functions:"+colorReset, "sin(30), sqrt(16), log(100)")
	fmt.Printf("│ %-25s %s\n", colorBold+"Variables:"+colorReset, "10→x, x*2→y")
	fmt.Printf("│ %-25s %s\n", colorBold+"Scientific:"+colorReset, "2e-10, 3.14E+5")
	fmt.Printf("│ %-25s %s\n", colorBold+"Statistics:"+colorReset, "mean([[1,2,3,4,5]])")
	fmt.Println(colorCyan + "└──────────────────────────────────────────────────────────┘" + colorReset)
	fmt.Println()
}

// clearScreen clears the terminal display
func clearScreen() {
	fmt.Print("\033[H\033[2J")
}

// formatResult formats numerical results with proper precision
func (s *session) formatResult(result float64) string {
	if math.IsNaN(result) {
		return colorRed + "undefined (NaN)" + colorReset
	} else if math.IsInf(result, 1) {
		return colorYellow + "+∞" + colorReset
	} else if math.IsInf(result, -1) {
		return colorYellow + "-∞" + colorReset
	} else {
		format := fmt.Sprintf("%%.%dg", s.cfg.Precision)
		return colorGreen + fmt.Sprintf(format, result) + colorReset
	}
}

// showVariables displays all currently stored variables, sorted by name
func (s *session) showVariables() {
	if len(s.store.Symbols) == 0 {
		fmt.Println(colorYellow + "No variables defined." + colorReset)
		return
	}

	fmt.Println(colorCyan + "┌─ Stored Variables ───────────────────────────────────────┐" + colorReset)
	for _, name := range expr.SortedNames(s.store.Symbols) {
		fmt.Printf(colorCyan+"│ "+colorReset+colorBold+"%-15s"+colorReset+" = %s\n", name, s.formatResult(s.store.Symbols[name]))
	}
	fmt.Println(colorCyan + "└──────────────────────────────────────────────────────────┘" + colorReset)
	fmt.Println()
}

// handlePrecision processes precision setting commands
func (s *session) handlePrecision(input string) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		fmt.Println(colorRed + "Usage: " + colorReset + "precision <number>")
		fmt.Println(colorDim + "   Example: precision 10" + colorReset)
		return
	}

	precision, err := strconv.Atoi(parts[1])
	if err != nil {
		fmt.Printf(colorRed+"Invalid number: %s\n"+colorReset, parts[1])
		return
	}

	if err := s.cfg.SetPrecision(precision); err != nil {
		fmt.Printf(colorRed+"Error: %v\n"+colorReset, err)
		return
	}
	s.saveConfig()

	fmt.Printf(colorGreen+"Precision set to %d significant digits\n"+colorReset, s.cfg.Precision)
}

// handleAngleUnit processes angle-unit setting commands
func (s *session) handleAngleUnit(input string) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		fmt.Println(colorRed + "Usage: " + colorReset + "angle <degrees|radians>")
		return
	}

	if err := s.cfg.SetAngleUnit(config.AngleUnit(parts[1])); err != nil {
		fmt.Printf(colorRed+"Error: %v\n"+colorReset, err)
		return
	}
	s.saveConfig()

	fmt.Printf(colorGreen+"Angle unit set to %s\n"+colorReset, s.cfg.AngleUnit)
}

func (s *session) saveConfig() {
	if err := s.cfg.Save(configFile); err != nil {
		fmt.Printf(colorYellow+"Warning: Failed to save config: %v\n"+colorReset, err)
	}
}

// handleConversion processes unit conversion commands
func (s *session) handleConversion(input string) {
	parts := strings.Fields(input)
	if len(parts) != 5 || parts[3] != "to" {
		fmt.Println(colorRed + "Usage: " + colorReset + "convert <value> <from> to <to>")
		fmt.Println(colorDim + "   Example: convert 10 km to m" + colorReset)
		return
	}

	valueStr := parts[1]
	fromUnit := parts[2]
	toUnit := parts[4]

	ast, status, err := parser.Parse(valueStr, s.registry)
	if err != nil || status != parser.Success {
		fmt.Printf(colorRed+"Invalid number: %s\n"+colorReset, valueStr)
		return
	}

	literal, ok := asNumberLiteral(ast)
	if !ok {
		fmt.Printf(colorRed+"Conversion value must be a numeric literal: %s\n"+colorReset, valueStr)
		return
	}

	converted, err := units.ConvertLiteral(literal, fromUnit, toUnit)
	if err != nil {
		fmt.Printf(colorRed+"Conversion error: %v\n"+colorReset, err)
		return
	}

	fmt.Printf(colorBold+"%s %s"+colorReset+" = "+colorGreen+"%s %s\n"+colorReset,
		s.formatResult(literal.Value), fromUnit,
		s.formatResult(converted.Value), toUnit)
}

// asNumberLiteral unwraps a parsed value down to the numeric literal it
// denotes, tolerating a leading unary minus (convert -10 m to ft).
func asNumberLiteral(e expr.Expression) (expr.Number, bool) {
	switch v := e.(type) {
	case expr.Number:
		return v, true
	case expr.Opposite:
		if n, ok := asNumberLiteral(v.Child); ok {
			return expr.Number{Value: -n.Value}, true
		}
	}
	return expr.Number{}, false
}

// handleExpression processes mathematical expressions: parse, evaluate,
// report, then persist both the history entry and the updated symbol
// table so variables and functions survive to the next session.
func (s *session) handleExpression(input string) {
	ast, status, err := parser.ParseWithDepth(input, s.registry, s.cfg.MaxRecursionDepth)
	if err != nil || status != parser.Success {
		fmt.Printf(colorRed+"Error: %v\n"+colorReset, err)
		return
	}

	result, err := eval.Eval(ast, s.store, s.cfg)
	if err != nil {
		fmt.Printf(colorRed+"Error: %v\n"+colorReset, err)
		return
	}

	fmt.Printf(colorBold+"Result: "+colorReset+"%s\n", s.formatResult(result))

	if err := history.AddHistory(input, ast, result); err != nil {
		fmt.Printf(colorYellow+"Warning: Failed to save to history: %v\n"+colorReset, err)
	}
	if err := s.store.Save(varsFile); err != nil {
		fmt.Printf(colorYellow+"Warning: Failed to save variables: %v\n"+colorReset, err)
	}
}
