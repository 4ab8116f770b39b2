// Package calendar renders normalized events as an iCalendar (ICS) feed
// suitable for importing into Google Calendar, Apple Calendar, or Outlook.
package calendar
