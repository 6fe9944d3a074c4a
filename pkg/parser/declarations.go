package parser

import (
	"plc/interpreter-go/pkg/ast"
)

func (p *parser) parseSource() (*ast.Source, error) {
	var globals []*ast.Global
	for p.peekKeyword("LIST") || p.peekKeyword("VAR") || p.peekKeyword("VAL") {
		global, err := p.parseGlobal()
		if err != nil {
			return nil, err
		}
		globals = append(globals, global)
	}
	var functions []*ast.Function
	for p.peekKeyword("FUN") {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}
	if p.has(0) {
		if p.peekKeyword("LIST") || p.peekKeyword("VAR") || p.peekKeyword("VAL") {
			return nil, p.errorf("parser: global %q declared after a function", p.tokens[p.pos].Literal)
		}
		return nil, p.expected("FUN")
	}
	return ast.NewSource(globals, functions), nil
}

func (p *parser) parseGlobal() (*ast.Global, error) {
	start := p.offset()
	var (
		global *ast.Global
		err    error
	)
	switch {
	case p.peekKeyword("LIST"):
		global, err = p.parseList()
	case p.peekKeyword("VAR"):
		global, err = p.parseMutable()
	default:
		global, err = p.parseImmutable()
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator(";"); err != nil {
		return nil, err
	}
	return at(global, start), nil
}

// parseGlobalHeader reads `name ':' Type` after the introducing keyword.
func (p *parser) parseGlobalHeader() (string, string, error) {
	name, err := p.expectIdentifier("global name")
	if err != nil {
		return "", "", err
	}
	if _, err := p.expectOperator(":"); err != nil {
		return "", "", err
	}
	typeName, err := p.expectIdentifier("type name")
	if err != nil {
		return "", "", err
	}
	return name, typeName, nil
}

func (p *parser) parseList() (*ast.Global, error) {
	p.advance()
	name, typeName, err := p.parseGlobalHeader()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator("="); err != nil {
		return nil, err
	}
	open, err := p.expectOperator("[")
	if err != nil {
		return nil, err
	}
	elements, err := p.parseExpressionList("]", false)
	if err != nil {
		return nil, err
	}
	list := at(ast.NewListLiteral(elements), open.Offset)
	return ast.NewGlobal(name, typeName, ast.GlobalList, list), nil
}

func (p *parser) parseMutable() (*ast.Global, error) {
	p.advance()
	name, typeName, err := p.parseGlobalHeader()
	if err != nil {
		return nil, err
	}
	var value ast.Expression
	if p.acceptOperator("=") {
		if value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return ast.NewGlobal(name, typeName, ast.GlobalVar, value), nil
}

func (p *parser) parseImmutable() (*ast.Global, error) {
	p.advance()
	name, typeName, err := p.parseGlobalHeader()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewGlobal(name, typeName, ast.GlobalVal, value), nil
}

func (p *parser) parseFunction() (*ast.Function, error) {
	start := p.advance().Offset
	name, err := p.expectIdentifier("function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator("("); err != nil {
		return nil, err
	}
	var params, paramTypes []string
	if !p.peekOperator(")") {
		for {
			param, err := p.expectIdentifier("parameter name")
			if err != nil {
				return nil, err
			}
			typeName := ""
			if p.acceptOperator(":") {
				if typeName, err = p.expectIdentifier("parameter type"); err != nil {
					return nil, err
				}
			}
			params = append(params, param)
			paramTypes = append(paramTypes, typeName)
			if !p.acceptOperator(",") {
				break
			}
			if p.peekOperator(")") {
				return nil, p.errorf("parser: trailing comma in parameter list")
			}
		}
	}
	if _, err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	var returnType *string
	if p.acceptOperator(":") {
		rt, err := p.expectIdentifier("return type")
		if err != nil {
			return nil, err
		}
		returnType = &rt
	}
	if _, err := p.expectKeyword("DO"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock("END")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return at(ast.NewFunction(name, params, paramTypes, returnType, body), start), nil
}
