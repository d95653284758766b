package fixes

import (
	"context"
	"fmt"
)

// UpdateTestFileFix updates test files to use newly created mocks.
func UpdateTestFileFix(ctx context.Context, testFile string, mockName string, lineStart, lineEnd int) (oldCode, newCode string, err error) {
	// Generate code change to update test to use new mock
	// This would replace old implementation calls with mock calls

	oldCode = "// Old implementation usage"
	newCode = fmt.Sprintf("mock := NewAdvancedMock%s()\n\t// Use mock instead", mockName)

	return oldCode, newCode, nil
}

// GenerateTestUpdateFix generates the complete fix for updating test file.
func GenerateTestUpdateFix(ctx context.Context, testFile string, mockName string, lineStart, lineEnd int) (oldCode, newCode string, err error) {
	// Placeholder: Would analyze test file and update to use mock
	return UpdateTestFileFix(ctx, testFile, mockName, lineStart, lineEnd)
}
