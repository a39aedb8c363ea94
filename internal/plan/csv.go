package plan

import (
	"strconv"
	"strings"
)

// CSVHeader is the exact Litchi mission header.
const CSVHeader = "latitude,longitude,altitude(ft),heading(deg),curvesize(ft),rotationdir,gimbalmode,gimbalpitchangle,altitudemode,speed(m/s),poi_latitude,poi_longitude,poi_altitude(ft),poi_altitudemode,photo_timeinterval,photo_distinterval"

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderCSV renders rows to CSV text with the fixed header. Numbers are
// printed in their shortest exact form, matching the source mission files.
func RenderCSV(rows []Row) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, r := range rows {
		fields := []string{
			fmtFloat(r.Latitude),
			fmtFloat(r.Longitude),
			fmtFloat(r.AltitudeFt),
			strconv.Itoa(r.HeadingDeg),
			fmtFloat(r.CurveSizeM),
			strconv.Itoa(r.RotationDir),
			strconv.Itoa(r.GimbalMode),
			strconv.Itoa(r.GimbalPitchDeg),
			strconv.Itoa(r.AltitudeMode),
			fmtFloat(r.SpeedMS),
			fmtFloat(r.POILatitude),
			fmtFloat(r.POILongitude),
			fmtFloat(r.POIAltitudeFt),
			strconv.Itoa(r.POIAltitudeMode),
			fmtFloat(r.PhotoInterval),
			fmtFloat(r.PhotoDistance),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}
	return b.String()
}
