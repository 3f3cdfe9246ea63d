package pcodedmp

// operandKind names what an opcode's fixed-position operand words decode
// into (spec.md §4.6). "imm" is a bare 16/32-bit immediate rendered as hex;
// the rest each select a distinct auxiliary-table decoder.
type operandKind string

const (
	operandImm     operandKind = "imm"
	operandName    operandKind = "name"
	operandImp     operandKind = "imp_"
	operandFunc    operandKind = "func_"
	operandVar     operandKind = "var_"
	operandRec     operandKind = "rec_"
	operandType    operandKind = "type_"
	operandContext operandKind = "context_"
)

// opcodeDef is one entry of the canonical VBA7 opcode table: a mnemonic,
// the ordered list of operand kinds that follow the opcode word, and
// whether a variable-length tail follows the fixed operands (spec.md §4.2).
type opcodeDef struct {
	mnemonic string
	args     []operandKind
	varg     bool
}

// opcodeTable is indexed by canonical (post-translation) opcode value.
// Transcribed from the original tool's opcodes table; mnemonics and operand
// shapes are kept verbatim, including "Memset"/"Dictset" with a lower-case
// 's' and the misspelled "DoUnitil", both load-bearing output text rather
// than typos to fix.
var opcodeTable = [264]opcodeDef{
	{"Imp", nil, false},
	{"Eqv", nil, false},
	{"Xor", nil, false},
	{"Or", nil, false},
	{"And", nil, false},
	{"Eq", nil, false},
	{"Ne", nil, false},
	{"Le", nil, false},
	{"Ge", nil, false},
	{"Lt", nil, false},
	{"Gt", nil, false},
	{"Add", nil, false},
	{"Sub", nil, false},
	{"Mod", nil, false},
	{"IDiv", nil, false},
	{"Mul", nil, false},
	{"Div", nil, false},
	{"Concat", nil, false},
	{"Like", nil, false},
	{"Pwr", nil, false},
	{"Is", nil, false},
	{"Not", nil, false},
	{"UMi", nil, false},
	{"FnAbs", nil, false},
	{"FnFix", nil, false},
	{"FnInt", nil, false},
	{"FnSgn", nil, false},
	{"FnLen", nil, false},
	{"FnLenB", nil, false},
	{"Paren", nil, false},
	{"Sharp", nil, false},
	{"LdLHS", []operandKind{operandName}, false},
	{"Ld", []operandKind{operandName}, false},
	{"MemLd", []operandKind{operandName}, false},
	{"DictLd", []operandKind{operandName}, false},
	{"IndexLd", []operandKind{operandImm}, false},
	{"ArgsLd", []operandKind{operandName, operandImm}, false},
	{"ArgsMemLd", []operandKind{operandName, operandImm}, false},
	{"ArgsDictLd", []operandKind{operandName, operandImm}, false},
	{"St", []operandKind{operandName}, false},
	{"MemSt", []operandKind{operandName}, false},
	{"DictSt", []operandKind{operandName}, false},
	{"IndexSt", []operandKind{operandImm}, false},
	{"ArgsSt", []operandKind{operandName, operandImm}, false},
	{"ArgsMemSt", []operandKind{operandName, operandImm}, false},
	{"ArgsDictSt", []operandKind{operandName, operandImm}, false},
	{"Set", []operandKind{operandName}, false},
	{"Memset", []operandKind{operandName}, false},
	{"Dictset", []operandKind{operandName}, false},
	{"Indexset", []operandKind{operandImm}, false},
	{"ArgsSet", []operandKind{operandName, operandImm}, false},
	{"ArgsMemSet", []operandKind{operandName, operandImm}, false},
	{"ArgsDictSet", []operandKind{operandName, operandImm}, false},
	{"MemLdWith", []operandKind{operandName}, false},
	{"DictLdWith", []operandKind{operandName}, false},
	{"ArgsMemLdWith", []operandKind{operandName, operandImm}, false},
	{"ArgsDictLdWith", []operandKind{operandName, operandImm}, false},
	{"MemStWith", []operandKind{operandName}, false},
	{"DictStWith", []operandKind{operandName}, false},
	{"ArgsMemStWith", []operandKind{operandName, operandImm}, false},
	{"ArgsDictStWith", []operandKind{operandName, operandImm}, false},
	{"MemSetWith", []operandKind{operandName}, false},
	{"DictSetWith", []operandKind{operandName}, false},
	{"ArgsMemSetWith", []operandKind{operandName, operandImm}, false},
	{"ArgsDictSetWith", []operandKind{operandName, operandImm}, false},
	{"ArgsCall", []operandKind{operandName, operandImm}, false},
	{"ArgsMemCall", []operandKind{operandName, operandImm}, false},
	{"ArgsMemCallWith", []operandKind{operandName, operandImm}, false},
	{"ArgsArray", []operandKind{operandName, operandImm}, false},
	{"Assert", nil, false},
	{"BoS", []operandKind{operandImm}, false},
	{"BoSImplicit", nil, false},
	{"BoL", nil, false},
	{"LdAddressOf", []operandKind{operandName}, false},
	{"MemAddressOf", []operandKind{operandName}, false},
	{"Case", nil, false},
	{"CaseTo", nil, false},
	{"CaseGt", nil, false},
	{"CaseLt", nil, false},
	{"CaseGe", nil, false},
	{"CaseLe", nil, false},
	{"CaseNe", nil, false},
	{"CaseEq", nil, false},
	{"CaseElse", nil, false},
	{"CaseDone", nil, false},
	{"Circle", []operandKind{operandImm}, false},
	{"Close", []operandKind{operandImm}, false},
	{"CloseAll", nil, false},
	{"Coerce", nil, false},
	{"CoerceVar", nil, false},
	{"Context", []operandKind{operandContext}, false},
	{"Debug", nil, false},
	{"DefType", []operandKind{operandImm, operandImm}, false},
	{"Dim", nil, false},
	{"DimImplicit", nil, false},
	{"Do", nil, false},
	{"DoEvents", nil, false},
	{"DoUnitil", nil, false},
	{"DoWhile", nil, false},
	{"Else", nil, false},
	{"ElseBlock", nil, false},
	{"ElseIfBlock", nil, false},
	{"ElseIfTypeBlock", []operandKind{operandImp}, false},
	{"End", nil, false},
	{"EndContext", nil, false},
	{"EndFunc", nil, false},
	{"EndIf", nil, false},
	{"EndIfBlock", nil, false},
	{"EndImmediate", nil, false},
	{"EndProp", nil, false},
	{"EndSelect", nil, false},
	{"EndSub", nil, false},
	{"EndType", nil, false},
	{"EndWith", nil, false},
	{"Erase", []operandKind{operandImm}, false},
	{"Error", nil, false},
	{"EventDecl", []operandKind{operandFunc}, false},
	{"RaiseEvent", []operandKind{operandName, operandImm}, false},
	{"ArgsMemRaiseEvent", []operandKind{operandName, operandImm}, false},
	{"ArgsMemRaiseEventWith", []operandKind{operandName, operandImm}, false},
	{"ExitDo", nil, false},
	{"ExitFor", nil, false},
	{"ExitFunc", nil, false},
	{"ExitProp", nil, false},
	{"ExitSub", nil, false},
	{"FnCurDir", nil, false},
	{"FnDir", nil, false},
	{"Empty0", nil, false},
	{"Empty1", nil, false},
	{"FnError", nil, false},
	{"FnFormat", nil, false},
	{"FnFreeFile", nil, false},
	{"FnInStr", nil, false},
	{"FnInStr3", nil, false},
	{"FnInStr4", nil, false},
	{"FnInStrB", nil, false},
	{"FnInStrB3", nil, false},
	{"FnInStrB4", nil, false},
	{"FnLBound", []operandKind{operandImm}, false},
	{"FnMid", nil, false},
	{"FnMidB", nil, false},
	{"FnStrComp", nil, false},
	{"FnStrComp3", nil, false},
	{"FnStringVar", nil, false},
	{"FnStringStr", nil, false},
	{"FnUBound", []operandKind{operandImm}, false},
	{"For", nil, false},
	{"ForEach", nil, false},
	{"ForEachAs", []operandKind{operandImp}, false},
	{"ForStep", nil, false},
	{"FuncDefn", []operandKind{operandFunc}, false},
	{"FuncDefnSave", []operandKind{operandFunc}, false},
	{"GetRec", nil, false},
	{"GoSub", []operandKind{operandName}, false},
	{"GoTo", []operandKind{operandName}, false},
	{"If", nil, false},
	{"IfBlock", nil, false},
	{"TypeOf", []operandKind{operandImp}, false},
	{"IfTypeBlock", []operandKind{operandImp}, false},
	{"Implements", []operandKind{operandImm, operandImm, operandImm, operandImm}, false},
	{"Input", nil, false},
	{"InputDone", nil, false},
	{"InputItem", nil, false},
	{"Label", []operandKind{operandName}, false},
	{"Let", nil, false},
	{"Line", []operandKind{operandImm}, false},
	{"LineCont", nil, true},
	{"LineInput", nil, false},
	{"LineNum", []operandKind{operandName}, false},
	{"LitCy", []operandKind{operandImm, operandImm, operandImm, operandImm}, false},
	{"LitDate", []operandKind{operandImm, operandImm, operandImm, operandImm}, false},
	{"LitDefault", nil, false},
	{"LitDI2", []operandKind{operandImm}, false},
	{"LitDI4", []operandKind{operandImm, operandImm}, false},
	{"LitDI8", []operandKind{operandImm, operandImm, operandImm, operandImm}, false},
	{"LitHI2", []operandKind{operandImm}, false},
	{"LitHI4", []operandKind{operandImm, operandImm}, false},
	{"LitHI8", []operandKind{operandImm, operandImm, operandImm, operandImm}, false},
	{"LitNothing", nil, false},
	{"LitOI2", []operandKind{operandImm}, false},
	{"LitOI4", []operandKind{operandImm, operandImm}, false},
	{"LitOI8", []operandKind{operandImm, operandImm, operandImm, operandImm}, false},
	{"LitR4", []operandKind{operandImm, operandImm}, false},
	{"LitR8", []operandKind{operandImm, operandImm, operandImm, operandImm}, false},
	{"LitSmallI2", nil, false},
	{"LitStr", nil, true},
	{"LitVarSpecial", nil, false},
	{"Lock", nil, false},
	{"Loop", nil, false},
	{"LoopUntil", nil, false},
	{"LoopWhile", nil, false},
	{"LSet", nil, false},
	{"Me", nil, false},
	{"MeImplicit", nil, false},
	{"MemRedim", []operandKind{operandName, operandImm, operandType}, false},
	{"MemRedimWith", []operandKind{operandName, operandImm, operandType}, false},
	{"MemRedimAs", []operandKind{operandName, operandImm, operandType}, false},
	{"MemRedimAsWith", []operandKind{operandName, operandImm, operandType}, false},
	{"Mid", nil, false},
	{"MidB", nil, false},
	{"Name", nil, false},
	{"New", []operandKind{operandImp}, false},
	{"Next", nil, false},
	{"NextVar", nil, false},
	{"OnError", []operandKind{operandName}, false},
	{"OnGosub", nil, true},
	{"OnGoto", nil, true},
	{"Open", []operandKind{operandImm}, false},
	{"Option", nil, false},
	{"OptionBase", nil, false},
	{"ParamByVal", nil, false},
	{"ParamOmitted", nil, false},
	{"ParamNamed", []operandKind{operandName}, false},
	{"PrintChan", nil, false},
	{"PrintComma", nil, false},
	{"PrintEoS", nil, false},
	{"PrintItemComma", nil, false},
	{"PrintItemNL", nil, false},
	{"PrintItemSemi", nil, false},
	{"PrintNL", nil, false},
	{"PrintObj", nil, false},
	{"PrintSemi", nil, false},
	{"PrintSpc", nil, false},
	{"PrintTab", nil, false},
	{"PrintTabComma", nil, false},
	{"PSet", []operandKind{operandImm}, false},
	{"PutRec", nil, false},
	{"QuoteRem", []operandKind{operandImm}, true},
	{"Redim", []operandKind{operandName, operandImm, operandType}, false},
	{"RedimAs", []operandKind{operandName, operandImm, operandType}, false},
	{"Reparse", nil, true},
	{"Rem", nil, true},
	{"Resume", []operandKind{operandName}, false},
	{"Return", nil, false},
	{"RSet", nil, false},
	{"Scale", []operandKind{operandImm}, false},
	{"Seek", nil, false},
	{"SelectCase", nil, false},
	{"SelectIs", []operandKind{operandImp}, false},
	{"SelectType", nil, false},
	{"SetStmt", nil, false},
	{"Stack", []operandKind{operandImm, operandImm}, false},
	{"Stop", nil, false},
	{"Type", []operandKind{operandRec}, false},
	{"Unlock", nil, false},
	{"VarDefn", []operandKind{operandVar}, false},
	{"Wend", nil, false},
	{"While", nil, false},
	{"With", nil, false},
	{"WriteChan", nil, false},
	{"ConstFuncExpr", nil, false},
	{"LbConst", []operandKind{operandName}, false},
	{"LbIf", nil, false},
	{"LbElse", nil, false},
	{"LbElseIf", nil, false},
	{"LbEndIf", nil, false},
	{"LbMark", nil, false},
	{"EndForVariable", nil, false},
	{"StartForVariable", nil, false},
	{"NewRedim", nil, false},
	{"StartWithExpr", nil, false},
	{"SetOrSt", []operandKind{operandName}, false},
	{"EndEnum", nil, false},
	{"Illegal", nil, false},
}
