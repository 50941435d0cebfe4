// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mos6502/opcode"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"ORIGIN":       fmt.Sprintf("0x%04x", ORIGIN),
	"RESET_VECTOR": fmt.Sprintf("0x%04x", RESET_VECTOR),
}

// equateDepth limits equates that name other equates.
const equateDepth = 8

// macroDepth limits macros that expand other macros.
const macroDepth = 16

// Assembler is a single pass macro assembler for the 6502.
type Assembler struct {
	Verbose bool          // If set, verbosely logs the assembler actions.
	Opcodes *opcode.Table // Opcode table to encode with; opcode.Standard() if nil.
	Line    []Line        // List of generated lines.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expanding int // Depth of macro expansion.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) table() *opcode.Table {
	if asm.Opcodes == nil {
		return opcode.Standard()
	}
	return asm.Opcodes
}

// valueOf returns the value of a simple word.
//
// Numbers may be '$' hex, '%' binary, or Go syntax integers. Names are
// resolved as equates, then labels. '<' and '>' select the low and high
// byte of a value.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	return asm.resolve(word, 0)
}

func (asm *Assembler) resolve(word string, depth int) (value uint32, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	if depth > equateDepth {
		err = ErrParseNumber(word)
		return
	}

	switch word[0] {
	case '<':
		value, err = asm.resolve(word[1:], depth)
		value &= 0xff
		return
	case '>':
		value, err = asm.resolve(word[1:], depth)
		value = (value >> 8) & 0xff
		return
	case '$', '%':
		base := 16
		if word[0] == '%' {
			base = 2
		}
		var v64 uint64
		v64, err = strconv.ParseUint(word[1:], base, 32)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		value = uint32(v64)
		return
	}

	if word[0] == '-' || (word[0] >= '0' && word[0] <= '9') {
		var v64 int64
		v64, err = strconv.ParseInt(word, 0, 33)
		if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
			err = ErrParseNumber(word)
			return
		}
		value = uint32(v64)
		return
	}

	equate, ok := asm.Equate[word]
	if ok {
		return asm.resolve(equate, depth+1)
	}

	addr, ok := asm.Label[word]
	if ok {
		value = uint32(addr)
		return
	}

	err = ErrLabelMissing(word)
	return
}

// byteOf clamps a value to a byte, allowing negative bytes.
func byteOf(value uint32) (data uint8, err error) {
	if value > 0xff && value < 0xffffff80 {
		err = ErrOperandRange
		return
	}
	data = uint8(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	for key, addr := range asm.Label {
		if _, ok := pred[key]; !ok {
			pred[key] = starlark.MakeInt(addr)
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine parses a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		value := words[2]
		v32, _err := asm.valueOf(value)
		if _err == nil {
			value = fmt.Sprintf("%#x", v32)
		}
		asm.Equate[words[1]] = value
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentPc()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.expanding >= macroDepth {
			err = ErrMacroNesting
			return
		}
		asm.expanding++
		defer func() { asm.expanding-- }()
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' names are local to each expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			mlineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, mlineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: mlineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, mlineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: mlineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentPc gets the address of the next emitted byte.
func (asm *Assembler) currentPc() int {
	if len(asm.Line) == 0 {
		return int(ORIGIN)
	}

	last := asm.Line[len(asm.Line)-1]

	return int(last.Pc) + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			var syntax *ErrSyntax
			if !errors.As(err, &syntax) {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			}
		}
	}()

	clear(asm.Label)
	asm.Line = asm.Line[:0]
	asm.expanding = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && strings.EqualFold(words[0], ".macro") {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && strings.EqualFold(words[0], ".endm") {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Line {
		op := &asm.Line[n]

		if len(op.LinkLabel) == 0 {
			continue
		}

		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		err = op.link(uint16(addr))
		if err != nil {
			return
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Line),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	pc := asm.currentPc()
	op := Line{LineNo: lineno, Pc: uint16(pc), Words: words}

	defer func() {
		if err != nil || len(op.Bytes) == 0 {
			return
		}
		if pc+len(op.Bytes) > MEMORY_SIZE {
			err = ErrProgramSize
			return
		}
		asm.Line = append(asm.Line, op)
	}()

	switch strings.ToLower(words[0]) {
	case ".byte":
		op.Bytes, err = asm.parseData(words[1:], 1)
		return
	case ".word":
		op.Bytes, err = asm.parseData(words[1:], 2)
		return
	}

	if strings.HasPrefix(words[0], ".") {
		err = ErrDirectiveInvalid
		return
	}

	mnemonic, ok := opcode.ParseMnemonic(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	err = asm.encode(&op, mnemonic, strings.Join(words[1:], ""))

	return
}

// parseData evaluates comma separated .byte or .word values.
func (asm *Assembler) parseData(words []string, width int) (data []uint8, err error) {
	if len(words) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	for _, word := range strings.Split(strings.Join(words, ""), ",") {
		var value uint32
		value, err = asm.valueOf(word)
		if err != nil {
			return
		}
		switch width {
		case 1:
			var b uint8
			b, err = byteOf(value)
			if err != nil {
				return
			}
			data = append(data, b)
		case 2:
			if value > 0xffff {
				err = ErrOperandRange
				return
			}
			data = append(data, uint8(value&0xff), uint8(value>>8))
		}
	}

	return
}

// encode assembles a single instruction into the line.
func (asm *Assembler) encode(op *Line, mnemonic opcode.Mnemonic, operand string) (err error) {
	table := asm.table()
	upper := strings.ToUpper(operand)

	emit := func(desc opcode.Descriptor, value uint32) {
		op.Bytes = append(op.Bytes, desc.Code)
		width := desc.Mode.Operands()
		if desc.Mode == opcode.MODE_NONE {
			// Jumps and branches have operands, but no addressing mode.
			width = int(desc.Length) - 1
		}
		switch width {
		case 1:
			op.Bytes = append(op.Bytes, uint8(value))
		case 2:
			op.Bytes = append(op.Bytes, uint8(value&0xff), uint8(value>>8))
		}
	}

	// Implied and accumulator
	if len(operand) == 0 || upper == "A" {
		desc, ok := table.Find(mnemonic, opcode.MODE_NONE)
		if !ok || desc.Length != 1 {
			err = ErrOpcodeValueMissing
			return
		}
		emit(desc, 0)
		return
	}

	var mode opcode.Mode
	var expr string
	switch {
	case strings.HasPrefix(operand, "#"):
		mode, expr = opcode.MODE_IMMEDIATE, operand[1:]
	case strings.HasPrefix(operand, "(") && strings.HasSuffix(upper, ",X)"):
		mode, expr = opcode.MODE_INDIRECT_X, operand[1:len(operand)-3]
	case strings.HasPrefix(operand, "(") && strings.HasSuffix(upper, "),Y"):
		mode, expr = opcode.MODE_INDIRECT_Y, operand[1:len(operand)-3]
	case strings.HasPrefix(operand, "(") && strings.HasSuffix(operand, ")"):
		return asm.encodeIndirectJump(op, mnemonic, operand[1:len(operand)-1])
	case strings.HasPrefix(operand, "("):
		err = ErrOperandInvalid
		return
	case strings.HasSuffix(upper, ",X"):
		mode, expr = opcode.MODE_ABSOLUTE_X, operand[:len(operand)-2]
	case strings.HasSuffix(upper, ",Y"):
		mode, expr = opcode.MODE_ABSOLUTE_Y, operand[:len(operand)-2]
	default:
		mode, expr = opcode.MODE_ABSOLUTE, operand
	}

	value, err := asm.valueOf(expr)
	var missing ErrLabelMissing
	if errors.As(err, &missing) && expr[0] != '<' && expr[0] != '>' {
		// Resolved when the program is linked.
		op.LinkLabel = string(missing)
		err = nil
	}
	if err != nil {
		return
	}

	switch mode {
	case opcode.MODE_IMMEDIATE, opcode.MODE_INDIRECT_X, opcode.MODE_INDIRECT_Y:
		if len(op.LinkLabel) != 0 {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		desc, ok := table.Find(mnemonic, mode)
		if !ok {
			err = ErrOperandInvalid
			return
		}
		var data uint8
		data, err = byteOf(value)
		if err != nil {
			return
		}
		emit(desc, uint32(data))
		return
	}

	if zp, _ := mode.ZeroPage(); len(op.LinkLabel) == 0 && value <= 0xff {
		desc, ok := table.Find(mnemonic, zp)
		if ok {
			emit(desc, value)
			return
		}
	}

	if value > 0xffff {
		err = ErrOperandRange
		return
	}

	desc, ok := table.Find(mnemonic, mode)
	if ok {
		emit(desc, value)
		return
	}

	if mode != opcode.MODE_ABSOLUTE {
		err = ErrOperandInvalid
		return
	}

	// Jumps and branches take an address operand.
	desc, ok = table.Find(mnemonic, opcode.MODE_NONE)
	if !ok || desc.Length == 1 {
		err = ErrOperandInvalid
		return
	}
	emit(desc, 0)
	if len(op.LinkLabel) == 0 {
		err = op.link(uint16(value))
	}

	return
}

// encodeIndirectJump assembles JMP (addr). Absolute and indirect JMP
// share mode None in the opcode table, so the indirect form is chosen
// by its opcode.
func (asm *Assembler) encodeIndirectJump(op *Line, mnemonic opcode.Mnemonic, expr string) (err error) {
	desc, ok := asm.table().Lookup(opcode.JMP_INDIRECT)
	if mnemonic != opcode.OP_JMP || !ok || desc.Mnemonic != opcode.OP_JMP {
		err = ErrOperandInvalid
		return
	}

	value, err := asm.valueOf(expr)
	var missing ErrLabelMissing
	if errors.As(err, &missing) && expr[0] != '<' && expr[0] != '>' {
		op.LinkLabel = string(missing)
		err = nil
	}
	if err != nil {
		return
	}
	if value > 0xffff {
		err = ErrOperandRange
		return
	}

	op.Bytes = append(op.Bytes, desc.Code, 0, 0)
	if len(op.LinkLabel) == 0 {
		err = op.link(uint16(value))
	}

	return
}
