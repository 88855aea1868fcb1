package model

// MaterialEstimate summarizes how much stock a group consumes.
type MaterialEstimate struct {
	TotalArea      float64 `json:"total_area"`       // Sum of raw length x width over all instances (unit²)
	TotalVolume    float64 `json:"total_volume"`     // Sum of raw length x width x thickness (unit³)
	TotalAreaM2    float64 `json:"total_area_m2"`    // TotalArea in square meters
	TotalVolumeM3  float64 `json:"total_volume_m3"`  // TotalVolume in cubic meters
	TotalBoardFeet float64 `json:"total_board_feet"` // TotalVolume in board feet
}

// mm3PerBoardFoot is the number of cubic millimeters in one board foot.
// 1 board foot = 12" x 12" x 1" = 144 cubic inches = 144 * 16387.064 mm³.
const mm3PerBoardFoot = 2359737.216

// EstimateGroup computes the stock consumed by every instance of a group,
// using raw (increased, snapped) sizes.
func EstimateGroup(g *GroupRecord, unit LengthUnit) MaterialEstimate {
	var area, volume float64
	for _, p := range g.Pieces() {
		area += p.RawSize.Area() * float64(p.Count)
		volume += p.RawSize.Volume() * float64(p.Count)
	}

	f := unit.factor()
	areaMM2 := area * f * f
	volumeMM3 := volume * f * f * f

	return MaterialEstimate{
		TotalArea:      area,
		TotalVolume:    volume,
		TotalAreaM2:    areaMM2 / 1e6,
		TotalVolumeM3:  volumeMM3 / 1e9,
		TotalBoardFeet: volumeMM3 / mm3PerBoardFoot,
	}
}
