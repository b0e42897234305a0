// Package encoding writes and reads the fixed-width payload sections of trapdc archives.
//
// Float64Encoder appends IEEE 754 float64 values (and uint32 dimension fields) in the
// byte order of an endian.EndianEngine. Float64Decoder reads them back either one at a
// time (At, All) or in bulk (DecodeTo), reinterpreting the payload in place when its
// byte order matches the host and the buffer is suitably aligned.
//
//	enc := encoding.NewFloat64Encoder(endian.GetLittleEndianEngine())
//	defer enc.Finish()
//	enc.WriteSlice(coeffs)
//	payload := enc.Bytes()
//
//	dec := encoding.NewFloat64Decoder(endian.GetLittleEndianEngine())
//	out := make([]float64, len(coeffs))
//	if err := dec.DecodeTo(out, payload); err != nil {
//	    return err
//	}
package encoding
