// Copyright 2025 datagrove.io. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package csv2sheets synchronises CSV documents fetched from HTTP endpoints with the
sheets of a Google Sheets spreadsheet.

csv2sheets can be used from the command line but is really intended to be run from a
systemd timer (or cron job) to keep a set of spreadsheet tabs up to date with a set of
CSV feeds. Each invocation performs a single pass over the configured endpoints and
exits - there is no resident process and no internal scheduler.

csv2sheets supports the following commands:

  - sync, to fetch the configured CSV endpoints and update the corresponding sheets
  - get, to download a sheet to a local CSV file
  - put, to upload a local CSV file to a sheet
  - authorise, to authorise csv2sheets to access a Google Sheets spreadsheet
  - version, to display the current version
  - help, to display the command list and command options
*/
package csv2sheets
