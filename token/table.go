package token

import "strconv"

// A Kw is a keyword.
type Kw int

// The keywords.
const (
	Let Kw = iota
	Mut
	Const
	Static
	Func
	Pub
	Using
	Ref
	Struct
	Enum
	Union
	Trait
	Impl
	Operator
	Where
	Namespace
	Import

	Bool
	CharType
	ThisType
	Unit
	Never
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	Usize
	Isize
	F32
	F64
	Str

	This
	Discard
	True
	False
	Nullptr
	Invalid
	Default
	Sizeof

	For
	While
	Loop
	If
	Else
	Match
	In
	Break
	Return

	nKeywords
)

var keywordText = [...]string{
	Let:       "let",
	Mut:       "mut",
	Const:     "const",
	Static:    "static",
	Func:      "func",
	Pub:       "pub",
	Using:     "using",
	Ref:       "ref",
	Struct:    "struct",
	Enum:      "enum",
	Union:     "union",
	Trait:     "trait",
	Impl:      "impl",
	Operator:  "operator",
	Where:     "where",
	Namespace: "namespace",
	Import:    "import",

	Bool:     "bool",
	CharType: "char",
	ThisType: "This",
	Unit:     "unit",
	Never:    "never",
	I8:       "i8",
	U8:       "u8",
	I16:      "i16",
	U16:      "u16",
	I32:      "i32",
	U32:      "u32",
	I64:      "i64",
	U64:      "u64",
	Usize:    "usize",
	Isize:    "isize",
	F32:      "f32",
	F64:      "f64",
	Str:      "str",

	This:    "this",
	Discard: "_",
	True:    "true",
	False:   "false",
	Nullptr: "nullptr",
	Invalid: "invalid",
	Default: "default",
	Sizeof:  "sizeof",

	For:    "for",
	While:  "while",
	Loop:   "loop",
	If:     "if",
	Else:   "else",
	Match:  "match",
	In:     "in",
	Break:  "break",
	Return: "return",
}

var keywords = func() map[string]Kw {
	m := make(map[string]Kw, nKeywords)
	for k, s := range keywordText {
		m[s] = Kw(k)
	}
	return m
}()

// LookupKeyword returns the keyword spelled s, if any.
func LookupKeyword(s string) (Kw, bool) {
	k, ok := keywords[s]
	return k, ok
}

func (k Kw) String() string {
	if k < 0 || k >= nKeywords {
		return "Kw(" + strconv.Itoa(int(k)) + ")"
	}
	return keywordText[k]
}

// A Sym is a symbol.
type Sym int

// The symbols.
const (
	BracketOpen  Sym = iota // [
	BracketClose            // ]
	BraceOpen               // {
	BraceClose              // }
	ParenOpen               // (
	ParenClose              // )

	Add       // +
	Increment // ++
	AddAssign // +=

	Sub       // -
	Decrement // --
	SubAssign // -=

	Mul       // *
	MulAssign // *=

	Div       // /
	DivAssign // /=

	Rem       // %
	RemAssign // %=

	BitAnd       // &
	BoolAnd      // &&
	BitAndAssign // &=

	BitOr       // |
	BoolOr      // ||
	BitOrAssign // |=

	BitXor       // ^
	BoolXor      // ^^
	BitXorAssign // ^=

	BitNot       // ~
	BitNotAssign // ~=

	Shl       // <<
	ShlAssign // <<=
	Shr       // >>
	ShrAssign // >>=

	Greater      // >
	Less         // <
	GreaterEqual // >=
	LessEqual    // <=
	Equal        // ==
	NotEqual     // !=

	BoolNot           // !
	Colon             // :
	DoubleColon       // ::
	Semicolon         // ;
	Assign            // =
	Optional          // ?
	Dot               // .
	ValueCoalesce     // ?.
	ValueCascade      // !.
	ReferenceCoalesce // ?->
	ReferenceCascade  // !->
	Range             // ..
	RangeTo           // ..=
	RangeFrom         // <..
	RangeFromTo       // <..=
	Rest              // ...
	Comma             // ,
	WideArrow         // =>
	SmallArrow        // ->
	Pound             // #

	nSymbols
)

// Symbols lists every symbol lexeme in match order.
// A lexeme always comes before any of its proper prefixes,
// so taking the first entry that matches is a longest match.
var Symbols = []struct {
	Text string
	Sym  Sym
}{
	{"...", Rest},
	{"<..=", RangeFromTo},
	{"..=", RangeTo},
	{"<..", RangeFrom},
	{"..", Range},
	{".", Dot},

	{"::", DoubleColon},
	{":", Colon},

	{"=>", WideArrow},
	{"==", Equal},
	{"=", Assign},

	{"->", SmallArrow},
	{"-=", SubAssign},
	{"--", Decrement},
	{"-", Sub},

	{"?->", ReferenceCoalesce},
	{"?.", ValueCoalesce},
	{"?", Optional},

	{"!->", ReferenceCascade},
	{"!.", ValueCascade},
	{"!=", NotEqual},
	{"!", BoolNot},

	{",", Comma},
	{";", Semicolon},

	{">>=", ShrAssign},
	{">>", Shr},
	{">=", GreaterEqual},
	{">", Greater},

	{"<<=", ShlAssign},
	{"<<", Shl},
	{"<=", LessEqual},
	{"<", Less},

	{"|=", BitOrAssign},
	{"||", BoolOr},
	{"|", BitOr},

	{"&=", BitAndAssign},
	{"&&", BoolAnd},
	{"&", BitAnd},

	{"^=", BitXorAssign},
	{"^^", BoolXor},
	{"^", BitXor},

	{"*=", MulAssign},
	{"*", Mul},

	{"%=", RemAssign},
	{"%", Rem},

	{"/=", DivAssign},
	{"/", Div},

	{"+=", AddAssign},
	{"++", Increment},
	{"+", Add},

	{"~=", BitNotAssign},
	{"~", BitNot},

	{"#", Pound},
	{"[", BracketOpen},
	{"]", BracketClose},
	{"(", ParenOpen},
	{")", ParenClose},
	{"{", BraceOpen},
	{"}", BraceClose},
}

var symbolText = func() [nSymbols]string {
	var t [nSymbols]string
	for _, s := range Symbols {
		t[s.Sym] = s.Text
	}
	return t
}()

// LookupSymbol returns the symbol spelled exactly s, if any.
func LookupSymbol(s string) (Sym, bool) {
	for _, sym := range Symbols {
		if sym.Text == s {
			return sym.Sym, true
		}
	}
	return 0, false
}

func (s Sym) String() string {
	if s < 0 || s >= nSymbols {
		return "Sym(" + strconv.Itoa(int(s)) + ")"
	}
	return symbolText[s]
}
