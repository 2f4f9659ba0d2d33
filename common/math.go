package common

import "math"

// Rad2Deg and Deg2Rad convert between radians and degrees.
const (
	Rad2Deg = 180.0 / math.Pi
	Deg2Rad = math.Pi / 180.0
)

// Lerp interpolates from a to b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + Clamp01(t)*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Repeat loops t so that it is never larger than length and never smaller than 0.
func Repeat(t, length float64) float64 {
	if length == 0 {
		return 0
	}
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest signed difference in degrees from current to target.
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// ClampAngle wraps angle into (-360, 360) and clamps it to [lo, hi].
func ClampAngle(angle, lo, hi float64) float64 {
	angle = math.Mod(angle, 360)
	return Clamp(angle, lo, hi)
}

// SmoothDamp moves current towards target with a critically damped spring.
// velocity carries the spring state between calls and is updated in place.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if velocity == nil || dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	originalTo := target

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	output := target + (change+temp)*decay

	// no overshoot
	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		*velocity = (output - originalTo) / dt
	}
	return output
}

// SmoothDampAngle is SmoothDamp for angles in degrees, taking the shortest path.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, dt)
}

// YawForward returns the horizontal unit vector facing yaw degrees, +Z at 0.
func YawForward(yaw float64) Vec3 {
	rad := yaw * Deg2Rad
	return Vec3{X: math.Sin(rad), Z: math.Cos(rad)}
}

// ForwardYaw is the inverse of YawForward for the horizontal part of v.
func ForwardYaw(v Vec3) float64 {
	return math.Atan2(v.X, v.Z) * Rad2Deg
}

// PitchYawForward returns the unit view direction for a camera pitched down by
// pitch degrees and turned by yaw degrees.
func PitchYawForward(pitch, yaw float64) Vec3 {
	p := pitch * Deg2Rad
	y := yaw * Deg2Rad
	return Vec3{
		X: math.Cos(p) * math.Sin(y),
		Y: -math.Sin(p),
		Z: math.Cos(p) * math.Cos(y),
	}
}
