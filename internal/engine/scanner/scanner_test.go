package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/engine/scanner"
)

const sample = `// SPDX-License-Identifier: MIT
/* import "./Commented.sol"; */
pragma solidity >= 0.4.19   < 0.7.0;
pragma abicoder v2;

// import "./AlsoCommented.sol";
import "./A.sol";
import "./B.sol" as B;
import * as C from './C.sol';
import {
    D,
    E as Ee
} from "@dep/D.sol";
import "./A.sol";

contract X {
    string constant s = "import \"./Nope.sol\";";
}
`

func TestScan_Imports(t *testing.T) {
	res := scanner.Scan(sample)

	paths := make([]string, len(res.Imports))
	for i, imp := range res.Imports {
		paths[i] = imp.RawPath
	}
	assert.Equal(t, []string{"./A.sol", "./B.sol", "./C.sol", "@dep/D.sol", "./A.sol"}, paths)

	assert.Equal(t, "B", res.Imports[1].Alias)
	assert.Equal(t, "C", res.Imports[2].Alias)
	assert.Equal(t, []domain.ImportSymbol{{Name: "D"}, {Name: "E", Alias: "Ee"}}, res.Imports[3].Symbols)
	assert.Equal(t, 7, res.Imports[0].Line)
	assert.Equal(t, `import "./A.sol";`, sample[res.Imports[0].Span.Start:res.Imports[0].Span.End])
	assert.Empty(t, res.Malformed)
}

func TestScan_Pragmas(t *testing.T) {
	res := scanner.Scan(sample)

	require.Len(t, res.Pragmas, 2)
	p, ok := res.SolidityPragma()
	require.True(t, ok)
	assert.Equal(t, ">= 0.4.19 < 0.7.0", p.Value)
	assert.Equal(t, "pragma abicoder v2;", res.Pragmas[1].Text())

	declared, warnings := res.Declared()
	assert.Empty(t, warnings)
	want, err := domain.ParseConstraint(">=0.4.19 <0.7.0")
	require.NoError(t, err)
	assert.True(t, declared.Equal(want))
}

func TestScan_License(t *testing.T) {
	res := scanner.Scan(sample)
	require.Len(t, res.Licenses, 1)
	assert.Equal(t, "MIT", res.Licenses[0].Identifier)
	assert.Equal(t, "// SPDX-License-Identifier: MIT", sample[res.Licenses[0].Span.Start:res.Licenses[0].Span.End])
}

func TestScan_MissingPragma(t *testing.T) {
	res := scanner.Scan(`import "./A.sol"; contract B {}`)
	c, warnings := res.Declared()
	assert.True(t, c.IsUnconstrained())
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.KindMissingPragma, domain.KindOf(warnings[0]))
}

func TestScan_MalformedPragma(t *testing.T) {
	res := scanner.Scan("pragma solidity banana;\ncontract A {}")
	c, warnings := res.Declared()
	assert.True(t, c.IsUnconstrained())
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.KindMalformedPragma, domain.KindOf(warnings[0]))
}

func TestScan_UnterminatedImport(t *testing.T) {
	res := scanner.Scan("pragma solidity ^0.8.0;\nimport \"./A.sol\"\ncontract B {}\n")
	assert.Empty(t, res.Imports)
	require.Len(t, res.Malformed, 1)

	_, warnings := res.Declared()
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.KindMalformedImport, domain.KindOf(warnings[0]))
}

func TestScan_StripRanges(t *testing.T) {
	src := "// SPDX-License-Identifier: MIT\npragma solidity ^0.8.0;\nimport \"./A.sol\";\ncontract B {}\n"
	res := scanner.Scan(src)
	body := domain.CutSpans(src, res.StripRanges())
	assert.Equal(t, "contract B {}", strings.TrimSpace(body))
}
