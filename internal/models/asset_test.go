package models

import "testing"

func TestIsValidAssetTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{AssetStatusAvailable, AssetStatusDeployed, true},
		{AssetStatusDeployed, AssetStatusAvailable, true},
		{AssetStatusAvailable, AssetStatusMaintenance, true},
		{AssetStatusMaintenance, AssetStatusDeployed, true},
		{AssetStatusDeployed, AssetStatusRetired, true},
		{AssetStatusRetired, AssetStatusDisposed, true},

		// Invalid transitions
		{AssetStatusRetired, AssetStatusAvailable, false},
		{AssetStatusRetired, AssetStatusDeployed, false},
		{AssetStatusDisposed, AssetStatusAvailable, false},
		{AssetStatusDisposed, AssetStatusRetired, false},
		{AssetStatusAvailable, AssetStatusDisposed, false},
		{"nonexistent", AssetStatusDeployed, false},
		{AssetStatusAvailable, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidAssetTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidAssetTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllAssetStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{
		AssetStatusAvailable, AssetStatusDeployed, AssetStatusMaintenance,
		AssetStatusRetired, AssetStatusDisposed,
	}

	for _, status := range allStatuses {
		if _, ok := ValidAssetTransitions[status]; !ok {
			t.Errorf("status %q missing from ValidAssetTransitions map", status)
		}
	}
}
