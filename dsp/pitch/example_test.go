package pitch_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

func ExampleDetector_Process() {
	detector, err := pitch.New(44100, 2048)
	if err != nil {
		panic(err)
	}

	frame := make([]float64, 2048)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
	}

	result := detector.Process(frame)

	fmt.Printf("%s midi=%d pitched=%v\n", result.NoteName, result.MidiNote, result.Pitched)
	// Output:
	// A4 midi=69 pitched=true
}

func ExampleDetector_SetReferencePitch() {
	detector, err := pitch.New(44100, 2048, pitch.WithReferencePitch(432))
	if err != nil {
		panic(err)
	}

	fmt.Println(detector.ReferencePitch())
	fmt.Println(detector.SetReferencePitch(500))
	fmt.Println(detector.ReferencePitch())
	// Output:
	// 432
	// false
	// 432
}
