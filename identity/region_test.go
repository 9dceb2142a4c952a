package identity_test

import (
	"testing"

	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		want identity.Region
	}{
		{"US_EAST_1", identity.RegionUSEast1},
		{"EU_CENTRAL_1", identity.RegionEUCentral1},
		{"eu_west_2", identity.RegionEUWest2},
		{"APNortheast1", identity.RegionAPNortheast1},
		{"ap-southeast-2", identity.RegionAPSoutheast2},
		{"US_GOV_EAST_1", identity.RegionUSGovWest1},
		{"CN_NORTHWEST_1", identity.RegionCNNorthWest1},
		{"", identity.DefaultRegion},
		{"UNKNOWN", identity.DefaultRegion},
		{"Unknown", identity.DefaultRegion},
		{"DEFAULT_REGION", identity.DefaultRegion},
		{"MARS_NORTH_1", identity.DefaultRegion},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, identity.ParseRegion(tt.in))
		})
	}
}

func TestRegion_Code(t *testing.T) {
	require.Equal(t, "us-east-1", identity.RegionUSEast1.Code())
	require.Equal(t, "sa-east-1", identity.RegionSAEast1.Code())
	require.Equal(t, "us-east-1", identity.RegionUnknown.Code())
	require.Equal(t, "us-east-1", identity.RegionDefault.Code())
	require.Equal(t, "us-east-1", identity.Region("").Code())
}

func TestRegion_IsChina(t *testing.T) {
	require.True(t, identity.RegionCNNorth1.IsChina())
	require.False(t, identity.RegionEUNorth1.IsChina())
}

func TestRegion_Resolve(t *testing.T) {
	tests := []struct {
		in   identity.Region
		want identity.Region
	}{
		{identity.Region("EU_WEST_1"), identity.RegionEUWest1},
		{identity.Region("eu-west-1"), identity.RegionEUWest1},
		{identity.Region("ap_south_1"), identity.RegionAPSouth1},
		{identity.RegionCACentral1, identity.RegionCACentral1},
		{identity.RegionUnknown, identity.DefaultRegion},
		{identity.RegionDefault, identity.DefaultRegion},
		{identity.Region("MARS_NORTH_1"), identity.DefaultRegion},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.Resolve())
		})
	}
	require.Equal(t, "eu-west-1", identity.Region("EU_WEST_1").Code())
}
