package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/tinyvm/asm"
	"github.com/lookbusy1344/tinyvm/config"
	"github.com/lookbusy1344/tinyvm/vm"
)

const (
	exitSuccess = 0
	exitFileErr = 1
	exitVMFault = 2
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to config file (default: platform config dir)")
		maxCyclesFlg = flag.Uint64("max-cycles", 0, "Maximum VM cycles before aborting (overrides config when nonzero; a config value of 0 = unlimited)")
		formatFlg    = flag.String("format", "", "Number format for token dump: hex, dec, or both (overrides config)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tinyvm: %v\n", err)
		os.Exit(exitFileErr)
	}
	if *maxCyclesFlg != 0 {
		cfg.Execution.MaxCycles = *maxCyclesFlg
	}
	if *formatFlg != "" {
		cfg.Display.NumberFormat = *formatFlg
	}

	if flag.NArg() >= 1 {
		if err := dumpTokens(flag.Arg(0), cfg.Display.NumberFormat); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "tinyvm: %v\n", err)
			os.Exit(exitFileErr)
		}
		os.Exit(exitSuccess)
	}

	if err := runDemo(cfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tinyvm: %v\n", err)
		os.Exit(exitVMFault)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// dumpTokens reads path as assembly source and echoes each line's
// high-level token stream, mirroring the original implementation's
// "[line:col] TYPE 'value'" diagnostic dump. NUMBER and LITERAL values
// are printed per format: "dec", "both", or otherwise hex.
func dumpTokens(path string, format string) error {
	src, err := os.ReadFile(path) // #nosec G304 -- CLI-supplied path is the intended input
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", path, err)
	}

	reader := asm.NewLineReader(asm.NewTokenAggregator(asm.NewScanner(src)))
	for {
		line, tokErr, ok := reader.ReadLine()
		if tokErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "tinyvm: %v\n", tokErr)
		}
		if !ok {
			return nil
		}

		for _, tok := range line.Tokens() {
			if tok.Text != "" {
				fmt.Printf("[%s] %s '%s'\n", tok.Pos, tok.Kind, tok.Text)
			} else if tok.Kind == asm.HLNumber || tok.Kind == asm.HLLiteral {
				var num string
				switch format {
				case "dec":
					num = fmt.Sprintf("%d", tok.Numeric)
				case "both":
					num = fmt.Sprintf("%d (0x%x)", tok.Numeric, tok.Numeric)
				default:
					num = fmt.Sprintf("0x%x", tok.Numeric)
				}
				fmt.Printf("[%s] %s '%s'\n", tok.Pos, tok.Kind, num)
			} else {
				fmt.Printf("[%s] %s\n", tok.Pos, tok.Kind)
			}
		}
		fmt.Println()
	}
}

// runDemo assembles and runs the built-in Euclid's-GCD program
// (gcd(1071, 462) = 21), matching the original source's load_example.
func runDemo(cfg *config.Config) error {
	ctx := vm.NewContext()
	if err := ctx.InitializeStack(cfg.Execution.DefaultStack); err != nil {
		return err
	}
	if err := ctx.SetProgramBase(1032); err != nil {
		return err
	}

	if err := ctx.LoadProgram(gcdProgram()); err != nil {
		return err
	}

	if cfg.Execution.MaxCycles == 0 {
		if fault := ctx.Run(); fault != nil {
			return fault
		}
	} else {
		for ctx.State != vm.StateHalted && ctx.State != vm.StateFaulted {
			if ctx.Registers[vm.IC] >= cfg.Execution.MaxCycles {
				return fmt.Errorf("exceeded max-cycles=%d without halting", cfg.Execution.MaxCycles)
			}
			if fault := ctx.Step(); fault != nil {
				return fault
			}
		}
	}

	fmt.Printf("gcd(1071, 462) = %d (R0), cycles = %d (IC)\n", ctx.Registers[vm.R0], ctx.Registers[vm.IC])
	return nil
}

// gcdProgram builds the four-word-per-instruction encoding of Euclid's
// algorithm, laid out at absolute addresses 1032..1071 to match the
// original source's load_example: a leading jump to the setup block,
// a mod-based loop, and a call/ret pair tying them together.
func gcdProgram() []vm.InstructionData {
	jmpMain := vm.NewInstruction1(vm.OpJMP, vm.Literal, 1056)

	// loop, at 1036:
	movR2R1 := vm.NewInstruction2(vm.OpMOV, vm.Register, vm.Word(vm.R2), vm.Register, vm.Word(vm.R1))
	modR1 := vm.NewInstruction3(vm.OpMOD, vm.Register, vm.Word(vm.R1), vm.Register, vm.Word(vm.R0), vm.Register, vm.Word(vm.R1))
	movR0R2 := vm.NewInstruction2(vm.OpMOV, vm.Register, vm.Word(vm.R0), vm.Register, vm.Word(vm.R2))
	jnzLoop := vm.NewInstruction2(vm.OpJNZ, vm.Literal, 1036, vm.Register, vm.Word(vm.R1))
	ret := vm.NewInstruction0(vm.OpRET)

	// main, at 1056:
	setR0 := vm.NewInstruction2(vm.OpMOV, vm.Register, vm.Word(vm.R0), vm.Literal, 1071)
	setR1 := vm.NewInstruction2(vm.OpMOV, vm.Register, vm.Word(vm.R1), vm.Literal, 462)
	callLoop := vm.NewInstruction1(vm.OpCALL, vm.Literal, 1036)
	halt := vm.NewInstruction0(vm.OpHALT)

	instrs := []vm.Instruction{
		jmpMain, movR2R1, modR1, movR0R2, jnzLoop, ret, setR0, setR1, callLoop, halt,
	}
	data := make([]vm.InstructionData, len(instrs))
	for i := range instrs {
		data[i] = vm.Encode(&instrs[i])
	}
	return data
}
