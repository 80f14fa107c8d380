package golfscript

import (
	"fmt"
	"math/big"
)

// TokenKind classifies a scanned token.
type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenIdentifierDeclaration
	TokenRawString
	TokenString
	TokenNumber
	TokenOperator
	TokenArrayBeginning
	TokenArrayEnding
	TokenBlockBeginning
	TokenBlockEnding
)

var tokenKindNames = [...]string{
	TokenIdentifier:            "Identifier",
	TokenIdentifierDeclaration: "IdentifierDeclaration",
	TokenRawString:             "RawString",
	TokenString:                "String",
	TokenNumber:                "Number",
	TokenOperator:              "Operator",
	TokenArrayBeginning:        "ArrayBeginning",
	TokenArrayEnding:           "ArrayEnding",
	TokenBlockBeginning:        "BlockBeginning",
	TokenBlockEnding:           "BlockEnding",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme. Text is the verbatim source slice starting at Offset;
// Value holds the resolved string or declared name, Number the parsed integer.
type Token struct {
	Kind   TokenKind
	Text   string
	Value  string
	Number *big.Int
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Kind, t.Text, t.Line+1, t.Column+1)
}
