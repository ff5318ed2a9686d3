//go:build !purego && !js

package main

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"thermalcam/pkg/thermal"
)

// windowPadding leaves room for the legend panel in the initial window size.
const windowPadding = 90

// window shows frames in a resizable HighGUI window. Key events are only
// pumped inside WaitKey, so PollKey must be called after every Show.
type window struct {
	w   *gocv.Window
	log logrus.FieldLogger
}

func newDisplay(title string, log logrus.FieldLogger) (display, error) {
	w := gocv.NewWindow(title)
	if err := w.ResizeWindow(thermal.DisplayWidth+windowPadding, thermal.DisplayHeight); err != nil {
		log.WithError(err).Warn("Resizing display window failed")
	}
	log.WithField("title", title).Debug("Display window opened")
	return &window{w: w, log: log}, nil
}

func (d *window) Show(img *image.RGBA) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()
	if err := d.w.IMShow(mat); err != nil {
		return fmt.Errorf("show frame: %w", err)
	}
	return nil
}

func (d *window) PollKey() int {
	return d.w.WaitKey(1)
}

func (d *window) Close() error {
	return d.w.Close()
}
