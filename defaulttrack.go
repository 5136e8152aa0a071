package racenav

// DefaultTrack is raced when no track file is configured: a loop over two
// pads split by a gap that has to be jumped, a rotating door gate and a
// fork before the finish.
const DefaultTrack = `
track:
  start: w0
  waypoints:
    - {id: w0, pos: [0, 0, 0], radius: 1.5, next: [w1]}
    - {id: w1, pos: [0, 0, 15], radius: 1.5, jump: true, next: [w2]}
    - {id: w2, pos: [0, 0, 22], radius: 1.5, next: [w3]}
    - {id: w3, pos: [12, 0, 26], radius: 1.2, gate: door, next: [w4]}
    - {id: w4, pos: [24, 0, 22], radius: 1.5, next: [w5]}
    - {id: w5, pos: [24, 0, 4], radius: 1.5, next: [w6a, w6b]}
    - {id: w6a, pos: [16, 0, -6], radius: 1.5, next: [w0]}
    - {id: w6b, pos: [10, 0, -2], radius: 1.5, next: [w0]}
  gates:
    - id: door
      kind: rotatorAlign
      center: [12, 0, 30]
      target: [12, 0, 26]
      faces: [0, 180]
      forward: [0, 0, 1]
      targetForward: [0, 0, -1]
      speed: 30
      angleTolerance: 12
      stopRadius: 0.6
      checkRayClear: true
      rayMask: 4
  pads:
    - {id: south, top: [12, 0, 3.75], half: [16, 11.75]}
    - {id: north, top: [12, 0, 27.25], half: [16, 10.75]}
    - {id: bridge, top: [24, 0, 16], half: [3, 1]}
`
