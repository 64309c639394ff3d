package geometry

// Seek returns the steering force that turns velocity toward target at full speed.
// The desired velocity points from position to target with length maxVelocity;
// the force is the difference with the current velocity, clamped to maxForce.
func Seek(target, position, velocity Vector2D, maxForce, maxVelocity float64) Vector2D {
	desired := target.Sub(position).SetMag(maxVelocity)
	return desired.Sub(velocity).Limit(maxForce)
}

// Arrive is Seek with deceleration: inside arriveRadius the desired speed falls
// linearly with the remaining distance, reaching zero on the target.
// The result is not clamped; callers cap it before use.
func Arrive(target, position, velocity Vector2D, maxVelocity, arriveRadius float64) Vector2D {
	desired := target.Sub(position)
	d := desired.Len()

	speed := maxVelocity
	if arriveRadius > 0 && d < arriveRadius {
		speed = maxVelocity * d / arriveRadius
	}

	return desired.SetMag(speed).Sub(velocity)
}
