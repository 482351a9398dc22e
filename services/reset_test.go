package services

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestFlooredSubtractClampsAtZero(t *testing.T) {
	// The update is a pipeline expression, so the clamp is enforced by the
	// server even when the reversal exceeds the live total (a reset run
	// twice, or points edited down between evaluation and reset).
	got := flooredSubtract("$totalPoints", 25)
	want := bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$totalPoints", 25}}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("flooredSubtract: got %v, want %v", got, want)
	}
}
