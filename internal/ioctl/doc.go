// Package ioctl wraps the ioctl system call.
package ioctl
