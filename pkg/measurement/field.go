package measurement

import "sort"

// Field is the stable identifier of a measurable report field.
type Field string

// String returns the identifier.
func (f Field) String() string {
	return string(f)
}

// Operational hour counters.
const (
	FieldProjectorRunningHours Field = "projectorRunningHours"
	FieldLampRunningHours      Field = "lampRunningHours"
	FieldCurrentLampHours      Field = "currentLampHours"
)

// Optical.
const (
	FieldBrightness Field = "brightness"
	FieldContrast   Field = "contrast"
	FieldResolution Field = "resolution"
)

// Electrical.
const (
	FieldVoltagePN Field = "voltagePN"
	FieldVoltagePE Field = "voltagePE"
	FieldVoltageNE Field = "voltageNE"
	FieldFrequency Field = "frequency"
)

// Environmental.
const (
	FieldTemperature Field = "temperature"
	FieldHumidity    Field = "humidity"
)

// Air quality.
const (
	FieldHCHO Field = "hcho"
	FieldTVOC Field = "tvoc"
	FieldPM1  Field = "pm1"
	FieldPM25 Field = "pm25"
	FieldPM10 Field = "pm10"
)

// Screen geometry.
const (
	FieldScreenGain    Field = "screenGain"
	FieldThrowDistance Field = "throwDistance"
	FieldScreenHeight  Field = "screenHeight"
	FieldScreenWidth   Field = "screenWidth"
)

// Colorimetry.
const (
	FieldColorX  Field = "colorX"
	FieldColorY  Field = "colorY"
	FieldColorFL Field = "colorFL"
)

// Ventilation.
const (
	FieldExhaustCFM      Field = "exhaustCFM"
	FieldExhaustVelocity Field = "exhaustVelocity"
)

// Software and service process.
const (
	FieldSoftwareVersion Field = "softwareVersion"
	FieldServiceInterval Field = "serviceInterval"
	FieldResponseTime    Field = "responseTime"
)

// Fields lists every identifier known to this package.
var Fields = []Field{
	FieldProjectorRunningHours, FieldLampRunningHours, FieldCurrentLampHours,
	FieldBrightness, FieldContrast, FieldResolution,
	FieldVoltagePN, FieldVoltagePE, FieldVoltageNE, FieldFrequency,
	FieldTemperature, FieldHumidity,
	FieldHCHO, FieldTVOC, FieldPM1, FieldPM25, FieldPM10,
	FieldScreenGain, FieldThrowDistance, FieldScreenHeight, FieldScreenWidth,
	FieldColorX, FieldColorY, FieldColorFL,
	FieldExhaustCFM, FieldExhaustVelocity,
	FieldSoftwareVersion, FieldServiceInterval, FieldResponseTime,
}

// SortFields sorts fields in place by identifier.
func SortFields(fields []Field) {
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
}
