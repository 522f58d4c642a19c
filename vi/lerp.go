package vi

// vlLerp blends src into dst by frac/32 on each channel:
// dst = dst + ((src - dst) * frac) >> 5. frac is in [0, 31].
func vlLerp(dst *ccvg, src ccvg, frac int) {
	dst.r = uint8(int(dst.r) + (((int(src.r) - int(dst.r)) * frac) >> 5))
	dst.g = uint8(int(dst.g) + (((int(src.g) - int(dst.g)) * frac) >> 5))
	dst.b = uint8(int(dst.b) + (((int(src.b) - int(dst.b)) * frac) >> 5))
}
