package gpio

import "fmt"

// Physical header pin to BCM GPIO number. Power and ground pins are absent.
var boardToBCM = map[Line]int{
	3: 2, 5: 3, 7: 4, 8: 14, 10: 15,
	11: 17, 12: 18, 13: 27, 15: 22, 16: 23,
	18: 24, 19: 10, 21: 9, 22: 25, 23: 11,
	24: 8, 26: 7, 27: 0, 28: 1, 29: 5,
	31: 6, 32: 12, 33: 13, 35: 19, 36: 16,
	37: 26, 38: 20, 40: 21,
}

// BCM returns Broadcom GPIO number of the header pin.
func BCM(l Line) (int, error) {
	n, ok := boardToBCM[l]
	if !ok {
		return 0, fmt.Errorf("gpio: header pin %d is not a GPIO line", int(l))
	}
	return n, nil
}
