package identity

import "strings"

// Region selects the vendor service region an adapter is configured for.
type Region string

const (
	RegionUnknown      Region = "Unknown"
	RegionUSGovWest1   Region = "USGovWest1"
	RegionUSEast1      Region = "USEast1"
	RegionUSEast2      Region = "USEast2"
	RegionUSWest1      Region = "USWest1"
	RegionUSWest2      Region = "USWest2"
	RegionEUWest1      Region = "EUWest1"
	RegionEUWest2      Region = "EUWest2"
	RegionEUWest3      Region = "EUWest3"
	RegionEUCentral1   Region = "EUCentral1"
	RegionEUNorth1     Region = "EUNorth1"
	RegionAPSouth1     Region = "APSouth1"
	RegionAPSoutheast1 Region = "APSoutheast1"
	RegionAPSoutheast2 Region = "APSoutheast2"
	RegionAPNortheast1 Region = "APNortheast1"
	RegionAPNortheast2 Region = "APNortheast2"
	RegionSAEast1      Region = "SAEast1"
	RegionCACentral1   Region = "CACentral1"
	RegionCNNorth1     Region = "CNNorth1"
	RegionCNNorthWest1 Region = "CNNorthWest1"
	RegionDefault      Region = "DEFAULT_REGION"
)

// DefaultRegion is used whenever no region, or an unrecognised one, is supplied.
const DefaultRegion = RegionUSEast1

var regionCodes = map[Region]string{
	RegionUSGovWest1:   "us-gov-west-1",
	RegionUSEast1:      "us-east-1",
	RegionUSEast2:      "us-east-2",
	RegionUSWest1:      "us-west-1",
	RegionUSWest2:      "us-west-2",
	RegionEUWest1:      "eu-west-1",
	RegionEUWest2:      "eu-west-2",
	RegionEUWest3:      "eu-west-3",
	RegionEUCentral1:   "eu-central-1",
	RegionEUNorth1:     "eu-north-1",
	RegionAPSouth1:     "ap-south-1",
	RegionAPSoutheast1: "ap-southeast-1",
	RegionAPSoutheast2: "ap-southeast-2",
	RegionAPNortheast1: "ap-northeast-1",
	RegionAPNortheast2: "ap-northeast-2",
	RegionSAEast1:      "sa-east-1",
	RegionCACentral1:   "ca-central-1",
	RegionCNNorth1:     "cn-north-1",
	RegionCNNorthWest1: "cn-northwest-1",
}

// enum names as used by application code (US_EAST_1 etc.)
var regionNames = map[string]Region{
	"UNKNOWN":        RegionUnknown,
	"US_GOV_EAST_1":  RegionUSGovWest1,
	"US_GOV_WEST_1":  RegionUSGovWest1,
	"US_EAST_1":      RegionUSEast1,
	"US_EAST_2":      RegionUSEast2,
	"US_WEST_1":      RegionUSWest1,
	"US_WEST_2":      RegionUSWest2,
	"EU_WEST_1":      RegionEUWest1,
	"EU_WEST_2":      RegionEUWest2,
	"EU_WEST_3":      RegionEUWest3,
	"EU_CENTRAL_1":   RegionEUCentral1,
	"EU_NORTH_1":     RegionEUNorth1,
	"AP_SOUTH_1":     RegionAPSouth1,
	"AP_SOUTHEAST_1": RegionAPSoutheast1,
	"AP_SOUTHEAST_2": RegionAPSoutheast2,
	"AP_NORTHEAST_1": RegionAPNortheast1,
	"AP_NORTHEAST_2": RegionAPNortheast2,
	"SA_EAST_1":      RegionSAEast1,
	"CA_CENTRAL_1":   RegionCACentral1,
	"CN_NORTH_1":     RegionCNNorth1,
	"CN_NORTHWEST_1": RegionCNNorthWest1,
	"DEFAULT_REGION": RegionDefault,
}

// ParseRegion accepts an enum name ("US_EAST_1"), an enum value ("USEast1") or an
// AWS region code ("us-east-1"). Anything else resolves to DefaultRegion.
func ParseRegion(s string) Region {
	s = strings.TrimSpace(s)
	if r, ok := regionNames[strings.ToUpper(s)]; ok {
		if _, known := regionCodes[r]; known {
			return r
		}
		return DefaultRegion
	}
	for r, code := range regionCodes {
		if s == string(r) || strings.EqualFold(s, code) {
			return r
		}
	}
	return DefaultRegion
}

// Resolve normalises r the way ParseRegion does, so Region("EU_WEST_1") and
// Region("eu-west-1") both resolve to RegionEUWest1. Sentinels and unknown
// values resolve to DefaultRegion.
func (r Region) Resolve() Region {
	return ParseRegion(string(r))
}

// Code returns the AWS region code, e.g. "us-east-1".
func (r Region) Code() string {
	return regionCodes[r.Resolve()]
}

// IsChina reports whether the region lives in the amazonaws.com.cn partition.
func (r Region) IsChina() bool {
	return strings.HasPrefix(r.Code(), "cn-")
}

func (r Region) String() string {
	return string(r)
}
