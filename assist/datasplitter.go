package assist

import "github.com/go-httpwire/httpwire/h2"

// DataSplitter is the symmetric counterpart to Fragmenter for DATA
// frames: it accepts byte slices and emits DATA frames at configured
// capacity boundaries, setting END_STREAM only on the last frame of the
// last Write call flagged endStream.
type DataSplitter struct {
	streamID uint32
	capacity int
	sink     Sink
}

// NewDataSplitter builds a DataSplitter for streamID.
func NewDataSplitter(streamID uint32, capacity int, sink Sink) *DataSplitter {
	return &DataSplitter{streamID: streamID, capacity: capacity, sink: sink}
}

// Write splits data into capacity-sized DATA frames, setting END_STREAM
// on the final one when endStream is true. An empty data with
// endStream=true still emits one empty DATA frame carrying the flag.
func (s *DataSplitter) Write(data []byte, endStream bool) error {
	if len(data) == 0 {
		frame, _ := h2.EncodeData(s.streamID, endStream, 0, nil)
		return s.sink(frame)
	}

	for len(data) > 0 {
		n := len(data)
		if s.capacity > 0 && n > s.capacity {
			n = s.capacity
		}
		chunk := data[:n]
		data = data[n:]
		last := len(data) == 0

		frame, excess := h2.EncodeData(s.streamID, endStream && last, 0, chunk)
		if err := s.sink(frame); err != nil {
			return err
		}
		if len(excess) > 0 {
			data = append(append([]byte(nil), excess...), data...)
		}
	}
	return nil
}
