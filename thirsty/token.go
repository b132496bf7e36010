package thirsty

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenLTE      TokenType = "<="
	tokenGTE      TokenType = ">="
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="

	tokenComma    TokenType = ","
	tokenDot      TokenType = "."
	tokenLParen   TokenType = "("
	tokenRParen   TokenType = ")"
	tokenLBrace   TokenType = "{"
	tokenRBrace   TokenType = "}"
	tokenLBracket TokenType = "["
	tokenRBracket TokenType = "]"

	tokenDrink    TokenType = "DRINK"
	tokenPour     TokenType = "POUR"
	tokenSip      TokenType = "SIP"
	tokenIf       TokenType = "IF"
	tokenElse     TokenType = "ELSE"
	tokenWhile    TokenType = "WHILE"
	tokenFunction TokenType = "FUNCTION"
	tokenAsync    TokenType = "ASYNC"
	tokenAwait    TokenType = "AWAIT"
	tokenReturn   TokenType = "RETURN"
	tokenClass    TokenType = "CLASS"
	tokenProperty TokenType = "PROPERTY"
	tokenThis     TokenType = "THIS"
	tokenTry      TokenType = "TRY"
	tokenCatch    TokenType = "CATCH"
	tokenFinally  TokenType = "FINALLY"
	tokenThrow    TokenType = "THROW"
	tokenGuard    TokenType = "GUARD"
	tokenImport   TokenType = "IMPORT"
	tokenAs       TokenType = "AS"
	tokenExport   TokenType = "EXPORT"
	tokenTrue     TokenType = "TRUE"
	tokenFalse    TokenType = "FALSE"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "drink":
		return tokenDrink
	case "pour":
		return tokenPour
	case "sip":
		return tokenSip
	case "if":
		return tokenIf
	case "else":
		return tokenElse
	case "while":
		return tokenWhile
	case "function":
		return tokenFunction
	case "async":
		return tokenAsync
	case "await":
		return tokenAwait
	case "return":
		return tokenReturn
	case "class":
		return tokenClass
	case "property":
		return tokenProperty
	case "this":
		return tokenThis
	case "try":
		return tokenTry
	case "finally":
		return tokenFinally
	case "catch":
		return tokenCatch
	case "throw":
		return tokenThrow
	case "guard":
		return tokenGuard
	case "import":
		return tokenImport
	case "as":
		return tokenAs
	case "export":
		return tokenExport
	case "true":
		return tokenTrue
	case "false":
		return tokenFalse
	}
	return tokenIdent
}
