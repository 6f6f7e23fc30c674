package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionFromYawPitch returns the unit forward vector for the given yaw and
// pitch, both in degrees:
//
//	x = cos(pitch) * sin(yaw)
//	y = sin(pitch)
//	z = cos(pitch) * cos(yaw)
//
// A yaw of 180 with a pitch of 0 looks down -Z.
func DirectionFromYawPitch(yawDegrees, pitchDegrees float32) mgl32.Vec3 {
	yaw := mgl32.DegToRad(yawDegrees)
	pitch := mgl32.DegToRad(pitchDegrees)

	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)

	return mgl32.Vec3{cp * sy, sp, cp * cy}.Normalize()
}

// Mat4ApproxEqual compares every element of a and b within tolerance.
func Mat4ApproxEqual(a, b mgl32.Mat4, tolerance float32) bool {
	for i := range a {
		if !mgl32.FloatEqualThreshold(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

// Vec3ApproxEqual compares a and b per component with an absolute tolerance,
// so trig residue next to an exact zero still compares equal.
func Vec3ApproxEqual(a, b mgl32.Vec3, tolerance float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}
